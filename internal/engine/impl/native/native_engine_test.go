package native

import (
	"errors"
	"fmt"
	"testing"

	"github.com/agnosticeng/searchd-client/internal/engine"
	"github.com/go-mysql-org/go-mysql/mysql"
	"github.com/stretchr/testify/require"
)

func TestRegisterNames(t *testing.T) {
	var r = engine.NewRegistry()
	Register(r)

	require.Equal(t, []string{"native"}, r.Names())
}

func TestTranslateErrorTriState(t *testing.T) {
	eng, err := New(engine.Options{})
	require.NoError(t, err)

	// code 0 means the server did not actually flag a failure
	require.NoError(t, eng.TranslateError(&mysql.MyError{Code: 0, Message: "nothing happened"}))

	var engErr *engine.Error

	translated := eng.TranslateError(&mysql.MyError{Code: 1064, Message: "syntax error"})
	require.Error(t, translated)
	require.ErrorAs(t, translated, &engErr)

	translated = eng.TranslateError(fmt.Errorf("wrapped: %w", &mysql.MyError{Code: 1064, Message: "syntax error"}))
	require.Error(t, translated)
	require.ErrorAs(t, translated, &engErr)

	translated = eng.TranslateError(errors.New("connection reset"))
	require.Error(t, translated)
	require.ErrorAs(t, translated, &engErr)
}
