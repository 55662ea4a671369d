package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want :8080", cfg.Addr)
	}
	if cfg.CameraID != 0 {
		t.Errorf("CameraID = %d, want 0", cfg.CameraID)
	}
	if cfg.DBPath == "" {
		t.Error("DBPath should never be empty")
	}
	if cfg.MotionThreshold != 1.0 {
		t.Errorf("MotionThreshold = %f, want 1.0", cfg.MotionThreshold)
	}
	if cfg.NoCamera {
		t.Error("NoCamera should default to false")
	}
	if !cfg.Rich {
		t.Error("Rich should default to true")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HANDRUNNER_ADDR", ":9999")
	t.Setenv("HANDRUNNER_CAMERA_ID", "2")
	t.Setenv("HANDRUNNER_DB_PATH", "/tmp/scores.db")
	t.Setenv("HANDRUNNER_MOTION_THRESHOLD", "2.5")
	t.Setenv("HANDRUNNER_NO_CAMERA", "true")
	t.Setenv("HANDRUNNER_RICH", "false")
	t.Setenv("HANDRUNNER_STATIC_DIR", "/srv/web")

	cfg := Load()

	if cfg.Addr != ":9999" {
		t.Errorf("Addr = %q, want :9999", cfg.Addr)
	}
	if cfg.CameraID != 2 {
		t.Errorf("CameraID = %d, want 2", cfg.CameraID)
	}
	if cfg.DBPath != "/tmp/scores.db" {
		t.Errorf("DBPath = %q, want /tmp/scores.db", cfg.DBPath)
	}
	if cfg.MotionThreshold != 2.5 {
		t.Errorf("MotionThreshold = %f, want 2.5", cfg.MotionThreshold)
	}
	if !cfg.NoCamera {
		t.Error("NoCamera should be true")
	}
	if cfg.Rich {
		t.Error("Rich should be false")
	}
	if cfg.StaticDir != "/srv/web" {
		t.Errorf("StaticDir = %q, want /srv/web", cfg.StaticDir)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HANDRUNNER_CAMERA_ID", "not-a-number")
	t.Setenv("HANDRUNNER_MOTION_THRESHOLD", "lots")
	t.Setenv("HANDRUNNER_NO_CAMERA", "maybe")

	cfg := Load()

	if cfg.CameraID != 0 {
		t.Errorf("CameraID = %d, want default 0", cfg.CameraID)
	}
	if cfg.MotionThreshold != 1.0 {
		t.Errorf("MotionThreshold = %f, want default 1.0", cfg.MotionThreshold)
	}
	if cfg.NoCamera {
		t.Error("NoCamera should fall back to false")
	}
}
