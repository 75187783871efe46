package inventory

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestConfiglets(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("DC1-SPINE1.cfg", "hostname DC1-SPINE1\n")
	write("DC1-SPINE2.cfg", "hostname DC1-SPINE2\n")
	write("README.md", "not a configlet")

	configlets, err := Configlets(dir, "AVD", "cfg")
	if err != nil {
		t.Fatalf("configlets: %v", err)
	}
	want := []string{"AVD_DC1-SPINE1", "AVD_DC1-SPINE2"}
	if got := ConfigletNames(configlets); !reflect.DeepEqual(got, want) {
		t.Fatalf("names = %v, want %v", got, want)
	}
	if configlets["AVD_DC1-SPINE1"] != "hostname DC1-SPINE1\n" {
		t.Fatalf("unexpected content %q", configlets["AVD_DC1-SPINE1"])
	}
}

func TestConfigletsWithoutPrefix(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "leaf.cfg"), []byte("hostname leaf\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	configlets, err := Configlets(dir, "", "")
	if err != nil {
		t.Fatalf("configlets: %v", err)
	}
	if _, ok := configlets["leaf"]; !ok {
		t.Fatalf("expected bare name, got %v", ConfigletNames(configlets))
	}
}

func TestConfigletsEmptyDir(t *testing.T) {
	configlets, err := Configlets(t.TempDir(), "AVD", "cfg")
	if err != nil {
		t.Fatalf("configlets: %v", err)
	}
	if len(configlets) != 0 {
		t.Fatalf("expected no configlets, got %v", ConfigletNames(configlets))
	}
}
