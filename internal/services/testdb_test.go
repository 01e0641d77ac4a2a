package services

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BTheCoderr/momentum-ai-sub002/internal/logger"
	"github.com/BTheCoderr/momentum-ai-sub002/internal/types"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	require.NoError(t, err)
	return log
}

var testDBSeq atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	// cache=shared keeps gorm's pooled connections on one in-memory DB; the
	// sequence number keeps repeated calls within a test from sharing state.
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), testDBSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(
		&types.User{},
		&types.CheckIn{},
		&types.Goal{},
		&types.Message{},
		&types.CoachPreference{},
		&types.Pod{},
		&types.PodMember{},
		&types.PodInvite{},
		&types.Challenge{},
		&types.ChallengeProgress{},
		&types.PodXPEntry{},
		&types.PodVote{},
	))
	return gdb
}

// fakeAI is a scriptable language-model collaborator.
type fakeAI struct {
	text  string
	err   error
	calls int
}

func (f *fakeAI) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}
