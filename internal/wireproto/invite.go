package wireproto

import "strings"

// NormalizeInviteCode applies the case-fold-and-strip-space rule spec.md
// §6 requires before any invite-code lookup: "Invite codes are
// normalized (case-folded, strip-space) before lookup."
func NormalizeInviteCode(code string) string {
	return strings.ToLower(strings.Join(strings.Fields(code), ""))
}
