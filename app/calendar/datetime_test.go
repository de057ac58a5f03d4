package calendar

import (
	"testing"
	"time"
)

func TestDateNormalizerDateTime(t *testing.T) {
	got, err := NewDateNormalizer().Run("20240312T143005")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := time.Date(2024, time.March, 12, 14, 30, 5, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDateNormalizerUTCMarkerIsIgnored(t *testing.T) {
	n := NewDateNormalizer()

	withMarker, err := n.Run("20240312T140000Z")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	withoutMarker, err := n.Run("20240312T140000")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if !withMarker.Equal(withoutMarker) {
		t.Errorf("Expected a trailing Z to read as local time: %v vs %v", withMarker, withoutMarker)
	}
}

func TestDateNormalizerAllDay(t *testing.T) {
	got, err := NewDateNormalizer().Run("20240312")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	want := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Expected local midnight %v, got %v", want, got)
	}
}

func TestDateNormalizerRejectsShortTokens(t *testing.T) {
	n := NewDateNormalizer()

	if _, err := n.Run("20240312T1430"); err == nil {
		t.Error("Expected error for truncated date-time token")
	}
	if _, err := n.Run("202403"); err == nil {
		t.Error("Expected error for truncated date token")
	}
	if _, err := n.Run(""); err == nil {
		t.Error("Expected error for empty token")
	}
}

func TestDateNormalizerRejectsNonNumericFields(t *testing.T) {
	n := NewDateNormalizer()

	if _, err := n.Run("2024AbT143000"); err == nil {
		t.Error("Expected error for non-numeric date-time fields")
	}
	if _, err := n.Run("2024XY12"); err == nil {
		t.Error("Expected error for non-numeric date fields")
	}
}
