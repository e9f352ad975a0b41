package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// OrderPageURL is where customers land when a payment flow cannot
	// continue; payment redirects must never dead-end.
	OrderPageURL string

	// GatewayPageURL is the base URL of the hosted payment page the
	// in-memory gateway fabricates redirects to.
	GatewayPageURL string

	// ReconcileSchedule is the cron expression of the reconciliation job.
	ReconcileSchedule string

	// BankTolerance is the acceptable absolute difference between an
	// expected order total and a bank transfer amount.
	BankTolerance string

	// Outstanding-order sweep thresholds, in days.
	CancelAfterDays   int
	PingAfterDays     int
	CompleteAfterDays int
}
