package tui

import (
	"testing"

	"artes-cli/internal/model"
)

func TestInviteFlow_ArmsAtMostOnce(t *testing.T) {
	t.Parallel()

	var f inviteFlow
	if f.arm("") {
		t.Fatal("empty token must not arm")
	}
	if !f.arm("tok-1") {
		t.Fatal("first token must arm")
	}
	if f.stage != inviteCaptured {
		t.Fatalf("expected inviteCaptured; got %v", f.stage)
	}
	if f.arm("tok-2") {
		t.Fatal("second arm must be rejected")
	}
	if f.token != "tok-1" {
		t.Fatalf("token overwritten: %q", f.token)
	}
}

func TestInviteFlow_HappyPath(t *testing.T) {
	t.Parallel()

	var f inviteFlow
	f.arm("tok")
	f.previewLoaded(model.InvitationPreview{ActivityID: 7, InvitedEmail: "g@x.es"})
	if f.stage != invitePrompting {
		t.Fatalf("expected invitePrompting; got %v", f.stage)
	}
	if !f.beginExchange() {
		t.Fatal("exchange must start from prompting")
	}
	f.finish("")
	if f.stage != inviteAccepted {
		t.Fatalf("expected inviteAccepted; got %v", f.stage)
	}
	if f.active() {
		t.Fatal("accepted flow must be inactive")
	}
}

func TestInviteFlow_FailureIsTerminal(t *testing.T) {
	t.Parallel()

	var f inviteFlow
	f.arm("tok")
	f.finish("token expired")
	if f.stage != inviteFailed {
		t.Fatalf("expected inviteFailed; got %v", f.stage)
	}
	if f.errText != "token expired" {
		t.Fatalf("error text lost: %q", f.errText)
	}
	if f.beginExchange() {
		t.Fatal("failed flow must not start an exchange")
	}
	if f.arm("tok") {
		t.Fatal("failed flow must not re-arm")
	}
}

func TestInviteFlow_PreviewIgnoredOutOfOrder(t *testing.T) {
	t.Parallel()

	var f inviteFlow
	// A preview arriving without a captured token must not move the flow.
	f.previewLoaded(model.InvitationPreview{ActivityID: 1})
	if f.stage != inviteIdle || f.preview != nil {
		t.Fatalf("stray preview applied: stage=%v", f.stage)
	}
}
