package buildinfo

import (
	"strings"
	"testing"
)

func TestInfo(t *testing.T) {
	old := Version
	Version = "v1.2.3"
	defer func() { Version = old }()

	if got := Get().Version; got != "v1.2.3" {
		t.Errorf("Get().Version = %q", got)
	}
	if !strings.Contains(String(), "version: v1.2.3") {
		t.Errorf("String() = %q", String())
	}
	if !strings.Contains(Template(), "{{.Name}} v1.2.3") {
		t.Errorf("Template() = %q", Template())
	}
	if UserAgent() != "stickypack/v1.2.3" {
		t.Errorf("UserAgent() = %q", UserAgent())
	}
}
