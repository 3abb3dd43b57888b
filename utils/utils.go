package utils

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GenerateInviteLink produces an opaque invite token for a course
func GenerateInviteLink() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// GenerateCertificateNumber produces a unique certificate identifier
func GenerateCertificateNumber() string {
	return fmt.Sprintf("CERT-%s", strings.ToUpper(uuid.NewString()[:8]))
}
