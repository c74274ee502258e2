package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	kerrors "multibody-kinematics/pkg/errors"
	"multibody-kinematics/pkg/log"
)

func TestLoadString(t *testing.T) {
	data := `
stray: ignored before any section

[model]
type: double_pendulum   # two links
lengths = 1.0, 0.5

[state]
q: 0.3, -0.2
v: 0, 1
`

	cfg, err := LoadString(data)
	if err != nil {
		t.Fatalf("LoadString failed: %v", err)
	}

	if !cfg.HasSection("model") || !cfg.HasSection("state") {
		t.Error("expected [model] and [state] sections")
	}
	if cfg.HasSection("nonexistent") {
		t.Error("expected [nonexistent] section to not exist")
	}
	if got := cfg.GetSectionNames(); !reflect.DeepEqual(got, []string{"model", "state"}) {
		t.Errorf("expected file order, got %v", got)
	}

	model, err := cfg.GetSection("model")
	if err != nil {
		t.Fatalf("GetSection(model) failed: %v", err)
	}
	kind, err := model.Get("type")
	if err != nil {
		t.Fatalf("Get(type) failed: %v", err)
	}
	if kind != "double_pendulum" {
		t.Errorf("expected comment stripped, got '%s'", kind)
	}

	lengths, err := model.GetFloatList("lengths", ",", FloatBounds{})
	if err != nil {
		t.Fatalf("GetFloatList(lengths) failed: %v", err)
	}
	if !reflect.DeepEqual(lengths, []float64{1.0, 0.5}) {
		t.Errorf("expected [1 0.5], got %v", lengths)
	}
}

func TestEmptySectionHeader(t *testing.T) {
	_, err := LoadString("[]\nkey: value\n")
	if !kerrors.Is(err, kerrors.ErrConfigSection) {
		t.Errorf("expected CONFIG_SECTION error, got %v", err)
	}
	_, err = LoadString("[include other.cfg]\n")
	if !kerrors.Is(err, kerrors.ErrConfigSection) {
		t.Errorf("expected include to be rejected from strings, got %v", err)
	}
}

func TestSectionGetters(t *testing.T) {
	cfg, err := LoadString(`
[test]
Float_Val: 3.5
bool_yes: yes
bool_off: off
bad_float: abc
bad_bool: maybe
list: 1, 2,, 3
`)
	if err != nil {
		t.Fatal(err)
	}
	sec, _ := cfg.GetSection("test")

	if f, err := sec.GetFloat("float_val"); err != nil || f != 3.5 {
		t.Errorf("option names are case-insensitive: got %v, %v", f, err)
	}
	if f, err := sec.GetFloat("missing", 7); err != nil || f != 7 {
		t.Errorf("expected fallback 7, got %v, %v", f, err)
	}
	if b, err := sec.GetBool("bool_yes"); err != nil || !b {
		t.Errorf("expected true, got %v, %v", b, err)
	}
	if b, err := sec.GetBool("bool_off"); err != nil || b {
		t.Errorf("expected false, got %v, %v", b, err)
	}
	if _, err := sec.GetFloat("bad_float"); !kerrors.Is(err, kerrors.ErrConfigType) {
		t.Errorf("expected CONFIG_TYPE, got %v", err)
	}
	if _, err := sec.GetBool("bad_bool"); !kerrors.Is(err, kerrors.ErrConfigType) {
		t.Errorf("expected CONFIG_TYPE, got %v", err)
	}
	if l, err := sec.GetFloatList("list", ",", FloatBounds{}); err != nil || !reflect.DeepEqual(l, []float64{1, 2, 3}) {
		t.Errorf("expected [1 2 3], got %v, %v", l, err)
	}
}

func TestMissingOptionError(t *testing.T) {
	cfg, _ := LoadString("[model]\n")
	sec, _ := cfg.GetSection("model")

	_, err := sec.Get("type")
	if !kerrors.Is(err, kerrors.ErrConfigOption) {
		t.Fatalf("expected CONFIG_OPTION, got %v", err)
	}
	var kerr *kerrors.KinError
	if !asKinError(err, &kerr) || kerr.Section != "model" || kerr.Option != "type" {
		t.Errorf("expected section and option context, got %+v", err)
	}

	if _, err := cfg.GetSection("state"); !kerrors.Is(err, kerrors.ErrConfigSection) {
		t.Errorf("expected CONFIG_SECTION, got %v", err)
	}
}

func asKinError(err error, target **kerrors.KinError) bool {
	k, ok := err.(*kerrors.KinError)
	if ok {
		*target = k
	}
	return ok
}

func TestGetChoice(t *testing.T) {
	cfg, _ := LoadString("[output]\nformat: YAML\nbad: xml\n")
	sec, _ := cfg.GetSection("output")

	if v, err := sec.GetChoice("format", OutputFormats); err != nil || v != "yaml" {
		t.Errorf("expected canonical 'yaml', got %q, %v", v, err)
	}
	if v, err := sec.GetChoice("missing", OutputFormats, "text"); err != nil || v != "text" {
		t.Errorf("expected fallback, got %q, %v", v, err)
	}
	if _, err := sec.GetChoice("bad", OutputFormats); !kerrors.Is(err, kerrors.ErrConfigValidation) {
		t.Errorf("expected CONFIG_VALIDATION, got %v", err)
	}
}

func TestBoundsChecking(t *testing.T) {
	cfg, _ := LoadString("[b]\nzero: 0\nneg: -1\nlist: 1, -2\n")
	sec, _ := cfg.GetSection("b")
	zero := 0.0
	ten := 10.0

	tests := []struct {
		option string
		bounds FloatBounds
		ok     bool
	}{
		{"zero", FloatBounds{MinVal: &zero}, true},
		{"zero", FloatBounds{Above: &zero}, false},
		{"neg", FloatBounds{MinVal: &zero}, false},
		{"neg", FloatBounds{Below: &zero, MaxVal: &ten}, true},
	}
	for _, tt := range tests {
		_, err := sec.GetFloatWithBounds(tt.option, tt.bounds)
		if (err == nil) != tt.ok {
			t.Errorf("%s with %+v: unexpected err %v", tt.option, tt.bounds, err)
		}
		if err != nil && !kerrors.Is(err, kerrors.ErrConfigValidation) {
			t.Errorf("expected CONFIG_VALIDATION, got %v", err)
		}
	}

	if _, err := sec.GetFloatList("list", ",", FloatBounds{Above: &zero}); !kerrors.Is(err, kerrors.ErrConfigValidation) {
		t.Errorf("expected list element bound failure, got %v", err)
	}
}

func TestAccessTracking(t *testing.T) {
	cfg, _ := LoadString("[model]\ntype: pendulum\ntypo: 1\n[extra]\nx: 1\n")
	sec, _ := cfg.GetSection("model")
	sec.Get("type")
	sec.Get("lengths", "")

	if got := sec.GetUnusedOptions(); !reflect.DeepEqual(got, []string{"typo"}) {
		t.Errorf("expected only 'typo' unused, got %v", got)
	}
	if got := cfg.GetUnusedSections(); !reflect.DeepEqual(got, []string{"extra"}) {
		t.Errorf("expected only 'extra' unused, got %v", got)
	}

	err := cfg.CheckUnused()
	if !kerrors.Is(err, kerrors.ErrConfigValidation) {
		t.Fatalf("expected CONFIG_VALIDATION, got %v", err)
	}
	if !strings.Contains(err.Error(), "typo") || !strings.Contains(err.Error(), "extra") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base, _ := LoadString("[model]\ntype: pendulum\nlengths: 1\n")
	over, _ := LoadString("[model]\ntype: scara\n[state]\nq: 1\n")
	base.Merge(over)

	sec, _ := base.GetSection("model")
	if v, _ := sec.Get("type"); v != "scara" {
		t.Errorf("expected override 'scara', got %q", v)
	}
	if v, _ := sec.Get("lengths"); v != "1" {
		t.Errorf("expected kept '1', got %q", v)
	}
	if !base.HasSection("state") {
		t.Error("expected merged [state] section")
	}
}

func TestLoadWithInclude(t *testing.T) {
	dir := t.TempDir()
	write := func(name, data string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	write("state.cfg", "[state]\nq: 0.5\nv: 1.5\n")
	main := write("run.cfg", "[model]\ntype: pendulum\n[include state.cfg]\n[output]\nformat: json\n")

	rc, err := LoadRunConfig(main)
	if err != nil {
		t.Fatalf("LoadRunConfig failed: %v", err)
	}
	if rc.Model != "pendulum" || rc.Format != "json" {
		t.Errorf("unexpected run config %+v", rc)
	}
	if !reflect.DeepEqual(rc.Q, []float64{0.5}) || !reflect.DeepEqual(rc.V, []float64{1.5}) {
		t.Errorf("expected included state, got q=%v v=%v", rc.Q, rc.V)
	}

	loop := write("loop.cfg", "[include loop.cfg]\n")
	if _, err := Load(loop); !kerrors.Is(err, kerrors.ErrConfigSection) {
		t.Errorf("expected recursive include error, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.cfg")); !kerrors.Is(err, kerrors.ErrConfigSection) {
		t.Errorf("expected open error, got %v", err)
	}
}

func TestParseRunConfig(t *testing.T) {
	cfg, _ := LoadString(`
[model]
type: scara
lengths: 0.4, 0.3

[log]
level: DEBUG
format: json

[output]
format: yaml
metrics: on
`)
	rc, err := ParseRunConfig(cfg)
	if err != nil {
		t.Fatalf("ParseRunConfig failed: %v", err)
	}
	want := &RunConfig{
		Model:         "scara",
		Lengths:       []float64{0.4, 0.3},
		LogConfigured: true,
		LogLevel:      log.DEBUG,
		LogFormat:     log.FormatJSON,
		Format:        "yaml",
		Metrics:       true,
	}
	if !reflect.DeepEqual(rc, want) {
		t.Errorf("got %+v, want %+v", rc, want)
	}
	if err := cfg.CheckUnused(); err != nil {
		t.Errorf("every option should be consumed: %v", err)
	}
}

func TestParseRunConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code kerrors.ErrorCode
	}{
		{"no model", "[state]\nq: 1\n", kerrors.ErrConfigSection},
		{"no type", "[model]\nlengths: 1\n", kerrors.ErrConfigOption},
		{"negative length", "[model]\ntype: pendulum\nlengths: -1\n", kerrors.ErrConfigValidation},
		{"bad q", "[model]\ntype: pendulum\n[state]\nq: x\n", kerrors.ErrConfigType},
		{"bad format", "[model]\ntype: pendulum\n[output]\nformat: xml\n", kerrors.ErrConfigValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadString(tt.data)
			if err != nil {
				t.Fatal(err)
			}
			_, err = ParseRunConfig(cfg)
			if !kerrors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
			if !kerrors.IsConfig(err) {
				t.Errorf("expected a config error, got %v", err)
			}
		})
	}
}
