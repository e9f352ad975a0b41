package status

import "shoporder/internal/core/domain/model/kernel"

// Defaults returns the well-known statuses a fresh installation starts with.
// Each call generates fresh identifiers; the boot seeder only inserts codes
// that are not present yet, so identifiers stay stable once persisted.
//
// "returned" redirects to "storno": a return is recorded in history under its
// own code but the order lands on the terminal cancelled status.
func Defaults() []*Status {
	type row struct {
		code       string
		label      string
		color      string
		redirectTo string
	}

	rows := []row{
		{code: CodeNew, label: "New", color: "#e67e22"},
		{code: CodePaid, label: "Paid", color: "#27ae60"},
		{code: CodePreparing, label: "Preparing", color: "#2980b9"},
		{code: CodeSent, label: "Sent", color: "#8e44ad"},
		{code: CodeDone, label: "Done", color: "#2c3e50"},
		{code: CodeStorno, label: "Cancelled", color: "#c0392b"},
		{code: CodePaymentFailed, label: "Payment failed", color: "#d35400"},
		{code: CodeReturned, label: "Returned", color: "#7f8c8d", redirectTo: CodeStorno},
	}

	statuses := make([]*Status, 0, len(rows))
	for i, r := range rows {
		st, err := NewStatus(kernel.NewUUID(), r.code, r.label, i+1)
		if err != nil {
			// Rows above are static and valid; a failure here is a programming error.
			panic(err)
		}
		st.SetColor(r.color)
		if r.redirectTo != "" {
			_ = st.SetRedirect(r.redirectTo)
		}
		statuses = append(statuses, st)
	}

	return statuses
}

// Outstanding is the collection of statuses in which an order still waits for
// payment. The payment reconciler sweeps orders in these states.
func Outstanding() Collection {
	c, _ := NewCollection("outstanding", CodeNew)
	return c
}
