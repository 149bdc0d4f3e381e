package hashindex

import "context"

func (x *Index) SetSchemaVersionForTest(ctx context.Context, version int) error {
	_, err := x.db.ExecContext(ctx, "UPDATE schema_version SET version = ?", version)
	return err
}
