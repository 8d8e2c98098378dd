package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/kirillkom/textdesk/internal/core/domain"
)

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if got := out.String(); got != "textdeskctl dev\n" {
		t.Fatalf("unexpected version output %q", got)
	}
}

func TestReadInput(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.SetIn(strings.NewReader("from stdin"))

	got, err := readInput(cmd, []string{"-"})
	if err != nil || got != "from stdin" {
		t.Fatalf("expected stdin text, got %q, %v", got, err)
	}
	got, err = readInput(cmd, []string{"hola", "mundo"})
	if err != nil || got != "hola mundo" {
		t.Fatalf("expected joined args, got %q, %v", got, err)
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	want := map[string]bool{"check": false, "sentiment": false, "summarize": false, "keywords": false, "capture": false, "mcp": false, "version": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("subcommand %q not registered", name)
		}
	}
}

func TestSelectFeatures(t *testing.T) {
	all, err := selectFeatures("")
	if err != nil || len(all) != 5 {
		t.Fatalf("expected every feature, got %v, %v", all, err)
	}
	one, err := selectFeatures(" Keywords ")
	if err != nil || len(one) != 1 || one[0] != domain.FeatureKeywords {
		t.Fatalf("expected keywords, got %v, %v", one, err)
	}
	if _, err := selectFeatures("ocr"); err == nil || !strings.Contains(err.Error(), "text-summary") {
		t.Fatalf("expected unknown feature error listing valid names, got %v", err)
	}
}
