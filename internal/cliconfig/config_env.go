package cliconfig

import "os"

// ApplyEnvConfig applies XSM_* environment variables. They override the
// config file and are overridden by explicitly set flags.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("sync-mode", os.Getenv("XSM_SYNC_MODE"), &cfg.SyncMode)
	s.setString("script", os.Getenv("XSM_SCRIPT"), &cfg.Script)
	s.setString("animations", os.Getenv("XSM_ANIMATIONS"), &cfg.Animations)
	s.setString("log-level", os.Getenv("XSM_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("XSM_LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setIntFromString("frames", os.Getenv("XSM_FRAMES"), &cfg.Frames); err != nil {
		return err
	}
	if err := s.setIntFromString("history-size", os.Getenv("XSM_HISTORY_SIZE"), &cfg.HistorySize); err != nil {
		return err
	}
	if err := s.setDuration("delta", os.Getenv("XSM_DELTA"), &cfg.Delta); err != nil {
		return err
	}

	s.setBoolFromString("debug", os.Getenv("XSM_DEBUG"), &cfg.Debug)
	s.setBoolFromString("strict", os.Getenv("XSM_STRICT"), &cfg.Strict)

	return nil
}
