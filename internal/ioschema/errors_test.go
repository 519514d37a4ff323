package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnagro/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, nil},
		{"gorm", GORMConnectionError(cause), errcode.SchemaGORMConnectionError, nil},
		{"create", CreateSchemaError(cause), errcode.SchemaCreateError, nil},
		{"migrate", MigrateSchemaError(cause), errcode.SchemaMigrateError, nil},
		{"month check", MonthCheckError("planting_calendar", "harvest_end_month", cause),
			errcode.SchemaMonthCheckError,
			[]any{"planting_calendar", "harvest_end_month"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Equal(t, v.vars, gnErr.Vars)
			if v.msg != "not connected" {
				assert.ErrorIs(t, gnErr.Err, cause)
			}
		})
	}
}
