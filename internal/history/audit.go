package history

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
)

func insertAudit(ctx context.Context, tx pgx.Tx, calculationID, clientID, action string, metadata any) error {
	var s *string
	if metadata != nil {
		b, _ := json.Marshal(metadata)
		str := string(b)
		s = &str
	}
	const q = `
INSERT INTO calculation_audit (calculation_id, client_id, action, metadata)
VALUES ($1, $2, $3, CAST($4 AS jsonb))
`
	_, err := tx.Exec(ctx, q, calculationID, clientID, action, s)
	return err
}
