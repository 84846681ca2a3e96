package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExportObjectName(t *testing.T) {
	now := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))
	assert.Equal(t, "exports/sess-1/2024-03-09/summary_dQw4w9WgXcQ.pdf",
		ExportObjectName("sess-1", "summary_dQw4w9WgXcQ.pdf", now))
}

func TestSessionExportPrefix(t *testing.T) {
	prefix := SessionExportPrefix("sess-1")
	assert.Equal(t, "exports/sess-1/", prefix)
	assert.Contains(t, ExportObjectName("sess-1", "summary_x.txt", time.Now()), prefix)
}
