package repos

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/saemcare/saem-backend/internal/logger"
	"github.com/saemcare/saem-backend/internal/types"
)

func newTestDB(t *testing.T) (*gorm.DB, *logger.Logger) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.Elder{},
		&types.Question{},
		&types.ActivityGuide{},
		&types.Answer{},
		&types.Report{},
		&types.Analysis{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return gdb, log
}
