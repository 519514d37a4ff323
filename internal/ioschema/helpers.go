package ioschema

import "fmt"

// monthCheckName returns the name of a month CHECK constraint.
func monthCheckName(table, column string) string {
	return fmt.Sprintf("chk_%s_%s", table, column)
}

// formatMonthCheckSQL formats an idempotent statement that replaces the
// month CHECK constraint of a column.
func formatMonthCheckSQL(table, column string) string {
	name := monthCheckName(table, column)
	return fmt.Sprintf(
		`ALTER TABLE %s DROP CONSTRAINT IF EXISTS %s, `+
			`ADD CONSTRAINT %s CHECK (%s BETWEEN 1 AND 12)`,
		table, name, name, column,
	)
}
