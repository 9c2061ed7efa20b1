package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GenerateOrderNumber builds a public order confirmation identifier,
// e.g. SG-20260829-7F3A2C. Uniqueness comes from the uuid fragment;
// the date prefix keeps it human-sortable.
func GenerateOrderNumber() string {
	fragment := strings.ToUpper(uuid.New().String()[:6])
	return fmt.Sprintf("SG-%s-%s", time.Now().Format("20060102"), fragment)
}

// GenerateCartToken issues an opaque token identifying a guest cart.
func GenerateCartToken() string {
	return uuid.New().String()
}
