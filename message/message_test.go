package message

import (
	"testing"
)

func TestFluentChainReturnsSameMessage(t *testing.T) {
	m := New()
	m2 := m.SetFrom("a@example.com", "A").
		AddTo("b@example.com", "B").
		SetSubject("hi").
		SetText("hello")
	if m != m2 {
		t.Error("mutator chain returned a different Message pointer")
	}
	if m.From() == nil || m.From().Address != "a@example.com" {
		t.Errorf("unexpected sender: %+v", m.From())
	}
	if len(m.To()) != 1 || m.To()[0].Name != "B" {
		t.Errorf("unexpected recipients: %+v", m.To())
	}
}

func TestRecipientOrderPreserved(t *testing.T) {
	m := New().
		AddTo("first@example.com", "").
		AddTo("second@example.com", "").
		AddTo("third@example.com", "")
	want := []string{"first@example.com", "second@example.com", "third@example.com"}
	for i, r := range m.To() {
		if r.Address != want[i] {
			t.Errorf("recipient %d: wanted %v but got %v", i, want[i], r.Address)
		}
	}
}

func TestEmbedLastWriteWins(t *testing.T) {
	m := New().
		Embed("logo", "/tmp/old.png").
		Embed("logo", "/tmp/new.png")
	if len(m.Embedded()) != 1 {
		t.Fatalf("expected one embedded file, got %v", len(m.Embedded()))
	}
	if m.Embedded()["logo"] != "/tmp/new.png" {
		t.Errorf("expected the later path to win, got %v", m.Embedded()["logo"])
	}
}

func TestAttachAllowsDuplicates(t *testing.T) {
	m := New().
		Attach("/tmp/report.pdf").
		Attach("/tmp/report.pdf")
	if len(m.Attachments()) != 2 {
		t.Errorf("expected two attachment entries, got %v", len(m.Attachments()))
	}
}
