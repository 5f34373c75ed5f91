package profile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeAgent(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write agent file: %v", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "service_agent.md", `---
name: service_agent
description: Custom service object agent
tier: ask_first
---
You extract business logic into service objects with a single call method.
`)
	writeAgent(t, dir, "notes.txt", "not a profile")

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}

	p, err := reg.Get("service_agent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Description != "Custom service object agent" {
		t.Errorf("description = %q", p.Description)
	}
	if p.Tier != TierAskFirst {
		t.Errorf("tier = %q, want ask_first", p.Tier)
	}
	if !strings.HasPrefix(p.Prompt, "You extract") {
		t.Errorf("prompt not loaded from body: %q", p.Prompt)
	}
}

func TestLoadDirDefaultsTier(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "custom.md", `---
name: custom_agent
description: no tier declared
---
Prompt body.
`)

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err != nil {
		t.Fatalf("LoadDir: %v", err)
	}
	p, err := reg.Get("custom_agent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if p.Tier != TierAlways {
		t.Errorf("tier = %q, want always", p.Tier)
	}
}

func TestLoadDirRejectsBadTier(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "bad.md", `---
name: bad_agent
tier: sometimes
---
`)

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err == nil {
		t.Fatal("expected error for unknown tier")
	}
}

func TestLoadDirRejectsMissingFrontMatter(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "plain.md", "just markdown, no front matter\n")

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err == nil {
		t.Fatal("expected error for missing front matter")
	}
}

func TestLoadDirRejectsMissingName(t *testing.T) {
	dir := t.TempDir()
	writeAgent(t, dir, "anon.md", `---
description: nameless
---
`)

	reg := NewRegistry()
	if err := reg.LoadDir(dir); err == nil {
		t.Fatal("expected error for missing name")
	}
}
