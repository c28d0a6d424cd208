package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_timer "github.com/at-ishikawa/studydash/internal/mocks/timer"
	"github.com/at-ishikawa/studydash/internal/planner"
	"github.com/at-ishikawa/studydash/internal/testutil"
	"github.com/at-ishikawa/studydash/internal/timer"
)

func useConfig(t *testing.T, path string) {
	t.Helper()
	oldConfigFile := configFile
	configFile = path
	t.Cleanup(func() { configFile = oldConfigFile })
}

func TestSectionFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    SectionFlag
		wantErr bool
	}{
		{name: "timer", value: "timer", want: "timer"},
		{name: "case insensitive", value: "Planner", want: "planner"},
		{name: "invalid value", value: "calendar", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag SectionFlag
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid value")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, flag)
			assert.Equal(t, string(tt.want), flag.String())
			assert.Equal(t, "SectionFlag", flag.Type())
		})
	}

	var nilFlag *SectionFlag
	assert.Equal(t, "", nilFlag.String())
}

func TestModeFlag_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    ModeFlag
		wantErr bool
	}{
		{name: "work", value: "work", want: ModeFlag(timer.ModeWork)},
		{name: "short alias", value: "short", want: ModeFlag(timer.ModeShortBreak)},
		{name: "long alias", value: "long", want: ModeFlag(timer.ModeLongBreak)},
		{name: "invalid value", value: "nap", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var flag ModeFlag
			err := flag.Set(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "invalid value")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, flag)
			assert.Equal(t, "ModeFlag", flag.Type())
		})
	}
}

func TestRunCountdown(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mock_timer.NewMockClock(ctrl)
	ticks := make(chan time.Time)
	ticker := mock_timer.NewMockTicker(ctrl)
	ticker.EXPECT().C().Return((<-chan time.Time)(ticks)).AnyTimes()
	ticker.EXPECT().Stop().Times(1)
	clock.EXPECT().NewTicker(gomock.Any()).Return(ticker).Times(1)

	keeper := timer.New(timer.Settings{WorkMinutes: 25, ShortBreakMinutes: 1, LongBreakMinutes: 15}, timer.Config{Clock: clock})
	defer keeper.Close()

	var stdout bytes.Buffer
	errCh := make(chan error, 1)
	go func() {
		errCh <- runCountdown(context.Background(), &stdout, keeper, timer.ModeShortBreak)
	}()

	for i := 0; i < 60; i++ {
		ticks <- time.Now()
	}
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "countdown did not finish")
	}

	assert.Contains(t, stdout.String(), "Short Break 01:00\n")
	assert.Contains(t, stdout.String(), "Short Break 00:59\n")
	assert.Contains(t, stdout.String(), "Short Break 00:01\n")
	assert.Contains(t, stdout.String(), "Short Break finished!\n")
}

// gatedWriter blocks every write until gate is closed.
type gatedWriter struct {
	gate   chan struct{}
	buffer bytes.Buffer
}

func (w *gatedWriter) Write(p []byte) (int, error) {
	<-w.gate
	return w.buffer.Write(p)
}

func TestRunCountdown_SlowWriter(t *testing.T) {
	ctrl := gomock.NewController(t)
	clock := mock_timer.NewMockClock(ctrl)
	ticks := make(chan time.Time)
	ticker := mock_timer.NewMockTicker(ctrl)
	ticker.EXPECT().C().Return((<-chan time.Time)(ticks)).AnyTimes()
	ticker.EXPECT().Stop().Times(1)
	clock.EXPECT().NewTicker(gomock.Any()).Return(ticker).Times(1)

	keeper := timer.New(timer.Settings{WorkMinutes: 25, ShortBreakMinutes: 2, LongBreakMinutes: 15}, timer.Config{Clock: clock})
	defer keeper.Close()

	stdout := &gatedWriter{gate: make(chan struct{})}
	errCh := make(chan error, 1)
	go func() {
		errCh <- runCountdown(context.Background(), stdout, keeper, timer.ModeShortBreak)
	}()

	// More ticks than the subscription holds, so the expired event is dropped.
	for i := 0; i < 120; i++ {
		ticks <- time.Now()
	}
	require.Eventually(t, func() bool {
		return keeper.State().Expired()
	}, 5*time.Second, 10*time.Millisecond)
	close(stdout.gate)

	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		require.FailNow(t, "countdown did not finish")
	}
	assert.Contains(t, stdout.buffer.String(), "Short Break 02:00\n")
	assert.Contains(t, stdout.buffer.String(), "Short Break finished!\n")
}

func TestRunCountdown_Interrupted(t *testing.T) {
	keeper := timer.New(timer.DefaultSettings(), timer.Config{TickInterval: time.Hour})
	defer keeper.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout bytes.Buffer
	require.NoError(t, runCountdown(ctx, &stdout, keeper, timer.ModeWork))
	assert.Contains(t, stdout.String(), "Stopped at 25:00")
	assert.False(t, keeper.State().Running)
	assert.False(t, keeper.Ticking())
}

func TestGradesCommand(t *testing.T) {
	tmpDir := t.TempDir()
	useConfig(t, testutil.SetupTestConfig(t, tmpDir))

	var stdout bytes.Buffer
	cmd := newGradesCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"summary"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "Overall:  80.00 B")
	assert.Contains(t, stdout.String(), "Mathematics")

	stdout.Reset()
	cmd = newGradesCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"report"})
	require.NoError(t, cmd.Execute())

	reportPath := filepath.Join(tmpDir, "reports", "grades.md")
	assert.Contains(t, stdout.String(), "Report written to: "+reportPath)
	content, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "| Mathematics | Quiz | 80.00 | 10% |")
}

func TestPlannerCommand(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		wantContains []string
		wantFile     string
		wantErr      bool
	}{
		{
			name:         "list one date",
			args:         []string{"list", "--date", "2025-01-01"},
			wantContains: []string{"Tasks for Jan 1, 2025", "Read chapter 1", "(High)"},
		},
		{
			name:         "list every task",
			args:         []string{"list"},
			wantContains: []string{"All tasks", "Read chapter 1"},
		},
		{
			name:         "list a date without tasks",
			args:         []string{"list", "--date", "2025-02-01"},
			wantContains: []string{"No tasks for this date."},
		},
		{
			name:    "list invalid date",
			args:    []string{"list", "--date", "01/01/2025"},
			wantErr: true,
		},
		{
			name:     "report one date",
			args:     []string{"report", "--date", "2025-01-01"},
			wantFile: "planner-2025-01-01.md",
		},
		{
			name:     "report every task",
			args:     []string{"report"},
			wantFile: "planner.md",
		},
		{
			name:    "report invalid date",
			args:    []string{"report", "--date", "tomorrow"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			useConfig(t, testutil.SetupTestConfig(t, tmpDir))

			var stdout bytes.Buffer
			cmd := newPlannerCommand()
			cmd.SetOut(&stdout)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.wantContains {
				assert.Contains(t, stdout.String(), want)
			}
			if tt.wantFile != "" {
				content, err := os.ReadFile(filepath.Join(tmpDir, "reports", tt.wantFile))
				require.NoError(t, err)
				assert.Contains(t, string(content), "**Read chapter 1** (high, due 2025-01-01)")
			}
		})
	}
}

func TestStudyCommand(t *testing.T) {
	tmpDir := t.TempDir()
	useConfig(t, testutil.SetupTestConfig(t, tmpDir))

	var stdout bytes.Buffer
	cmd := newStudyCommand()
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"search", "algebra"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, stdout.String(), "Search: algebra")
	assert.Contains(t, stdout.String(), "Algebra Basics")
	assert.Contains(t, stdout.String(), "No notes found matching your search.")
	assert.Contains(t, stdout.String(), "No flashcards found matching your search.")
}

func TestCommands_InvalidConfig(t *testing.T) {
	useConfig(t, filepath.Join(t.TempDir(), "missing.yml"))

	cmd := newGradesCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"summary"})
	assert.Error(t, cmd.Execute())
}

func TestParseDateFlag(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *planner.Date
		wantErr bool
	}{
		{name: "empty selects every date", value: ""},
		{name: "all", value: "all"},
		{name: "date", value: "2023-06-15", want: &planner.Date{Year: 2023, Month: time.June, Day: 15}},
		{name: "invalid", value: "June 15", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDateFlag(tt.value, time.UTC)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	today, err := parseDateFlag("today", time.UTC)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.Equal(t, planner.Today(time.UTC), *today)
}
