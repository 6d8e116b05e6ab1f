package tui

import (
	"strings"

	"artes-cli/internal/model"
)

type inviteStage int

const (
	inviteIdle inviteStage = iota
	inviteCaptured
	invitePrompting
	inviteExchanging
	inviteAccepted
	inviteFailed
)

// inviteFlow is the guest-invitation state machine. A token arms the flow at
// most once per program run; after the exchange succeeds or fails the flow
// never re-arms, even with the same token still present.
type inviteFlow struct {
	stage   inviteStage
	token   string
	preview *model.InvitationPreview
	errText string
	armed   bool
}

// arm captures the invite token. Returns false when no token was given or
// the flow already armed once.
func (f *inviteFlow) arm(token string) bool {
	token = strings.TrimSpace(token)
	if token == "" || f.armed {
		return false
	}
	f.armed = true
	f.token = token
	f.stage = inviteCaptured
	return true
}

func (f *inviteFlow) previewLoaded(p model.InvitationPreview) {
	if f.stage != inviteCaptured {
		return
	}
	f.preview = &p
	f.stage = invitePrompting
}

func (f *inviteFlow) beginExchange() bool {
	if f.stage != invitePrompting {
		return false
	}
	f.stage = inviteExchanging
	return true
}

func (f *inviteFlow) finish(errText string) {
	if f.stage != inviteExchanging && f.stage != inviteCaptured {
		return
	}
	if errText != "" {
		f.errText = errText
		f.stage = inviteFailed
		return
	}
	f.stage = inviteAccepted
}

// abort drops back to the plain login prompt. The token stays consumed:
// an aborted flow never re-arms.
func (f *inviteFlow) abort() {
	if !f.active() {
		return
	}
	f.stage = inviteIdle
	f.preview = nil
	f.token = ""
}

func (f *inviteFlow) active() bool {
	switch f.stage {
	case inviteCaptured, invitePrompting, inviteExchanging:
		return true
	}
	return false
}
