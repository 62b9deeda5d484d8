package runtime

import "github.com/seekbug-project/seek-bug/lit"

// ReadOnly returns an uneditable view of c that satisfies lit.SiteConfig.
func (c *Config) ReadOnly() lit.SiteConfig {
	cp := *c
	cp.FileCheckPath = copyString(c.FileCheckPath)
	cp.NotPath = copyString(c.NotPath)
	cp.Environment = copyEnv(c.Environment)
	return &readOnlyConfig{cfg: cp}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyEnv(env map[string]string) map[string]string {
	out := make(map[string]string, len(env))
	for k, v := range env {
		out[k] = v
	}
	return out
}

// readOnlyConfig wraps a copy of Config so that callers holding the
// lit.SiteConfig cannot change the values the configuration step reads.
type readOnlyConfig struct {
	cfg Config
}

func (ro *readOnlyConfig) ObjRoot() string {
	return ro.cfg.ObjRoot
}

func (ro *readOnlyConfig) BinPath() string {
	return ro.cfg.BinPath
}

func (ro *readOnlyConfig) FileCheckPath() (string, bool) {
	if ro.cfg.FileCheckPath == nil {
		return "", false
	}
	return *ro.cfg.FileCheckPath, true
}

func (ro *readOnlyConfig) NotPath() (string, bool) {
	if ro.cfg.NotPath == nil {
		return "", false
	}
	return *ro.cfg.NotPath, true
}

func (ro *readOnlyConfig) SourceRoot() string {
	return ro.cfg.SourceRoot
}

func (ro *readOnlyConfig) UseLitShell() bool {
	return ro.cfg.UseLitShell
}

// Environment returns a copy of the captured host environment.
func (ro *readOnlyConfig) Environment() map[string]string {
	return copyEnv(ro.cfg.Environment)
}
