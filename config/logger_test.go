package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoggingConfig_FileLogger(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "ubelt.log")
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: "normal", Destination: dest, Mode: "overwrite"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}

	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("not expected")
	log.Info("conversion done", zap.String("unit", "rem"))
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	got := string(data)
	if !strings.Contains(got, "conversion done") || !strings.Contains(got, "rem") {
		t.Errorf("log file does not contain info entry:\n%s", got)
	}
	if strings.Contains(got, "not expected") {
		t.Errorf("debug entry leaked into normal level log:\n%s", got)
	}
}

func TestLoggingConfig_ReportForcesDebug(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "ubelt.log")
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: "none", Destination: dest, Mode: "append"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}
	rpt, err := (&ReporterConfig{Destination: filepath.Join(dir, "report.zip")}).Prepare()
	if err != nil {
		t.Fatalf("Prepare() report error = %v", err)
	}

	log, err := conf.Prepare(rpt)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	log.Debug("debug entry")
	_ = log.Sync()

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "debug entry") {
		t.Errorf("debug entry missing with report requested:\n%s", data)
	}
	if _, ok := rpt.entries["final.log"]; !ok {
		t.Error("log file was not stored in report")
	}
	if err := rpt.Close(); err != nil {
		t.Errorf("Close() report error = %v", err)
	}
}

func TestLoggingConfig_NoneLevels(t *testing.T) {
	conf := LoggingConfig{
		FileLogger:    LoggerConfig{Level: "none"},
		ConsoleLogger: LoggerConfig{Level: "none"},
	}
	log, err := conf.Prepare(nil)
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if log.Core().Enabled(zapcore.ErrorLevel) {
		t.Error("expected all levels disabled")
	}
}

func TestConsoleEnc_StripsVerboseErrors(t *testing.T) {
	enc := newEncoder(zap.NewDevelopmentEncoderConfig())
	base := errors.New("root cause")
	buf, err := enc.EncodeEntry(zapcore.Entry{Message: "failed"}, []zapcore.Field{zap.Error(base)})
	if err != nil {
		t.Fatalf("EncodeEntry() error = %v", err)
	}
	defer buf.Free()
	if !strings.Contains(buf.String(), "root cause") {
		t.Errorf("encoded entry lost error message: %s", buf.String())
	}
	if _, ok := enc.Clone().(consoleEnc); !ok {
		t.Error("Clone() must preserve encoder type")
	}
}
