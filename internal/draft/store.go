// Package draft persists unsubmitted narrative text per complaint stage so a
// reviewer can leave the page and come back without losing work.
package draft

import "context"

// Fields are the stage inputs a draft may be saved under. Anything else is
// rejected before it reaches storage.
var Fields = []string{
	"rca",
	"capa",
	"rca1",
	"capa1",
	"rca2",
	"capa2",
	"rcaDeadline",
	"rca1Deadline",
	"rca2Deadline",
}

func ValidField(field string) bool {
	for _, f := range Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Store keeps draft text keyed by (ticket, field). Saving an empty value
// removes the entry; a submitted stage clears the whole ticket.
type Store interface {
	Put(ctx context.Context, ticket, field, value string) error
	Get(ctx context.Context, ticket, field string) (string, error)
	Fields(ctx context.Context, ticket string) (map[string]string, error)
	ClearTicket(ctx context.Context, ticket string) error
}
