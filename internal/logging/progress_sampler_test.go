package logging

import "testing"

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)

	if !s.ShouldLog(0) {
		t.Fatal("first sample should emit")
	}
	if s.ShouldLog(4) {
		t.Fatal("same bucket should not emit")
	}
	if !s.ShouldLog(12) {
		t.Fatal("crossing a bucket boundary should emit")
	}
	if !s.ShouldLog(55) {
		t.Fatal("skipping buckets should still emit")
	}
	if s.ShouldLog(55) {
		t.Fatal("repeated value should not emit")
	}
	if !s.ShouldLog(100) {
		t.Fatal("completion should emit")
	}
}

func TestProgressSamplerUnknownPercent(t *testing.T) {
	s := NewProgressSampler(5)
	if s.ShouldLog(-1) {
		t.Fatal("unknown percent should not emit")
	}
}

func TestProgressSamplerReset(t *testing.T) {
	s := NewProgressSampler(5)
	if !s.ShouldLog(50) {
		t.Fatal("first emit expected")
	}
	s.Reset()
	if !s.ShouldLog(10) {
		t.Fatal("reset should allow earlier buckets again")
	}
}

func TestNilSamplerAlwaysLogs(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(3) {
		t.Fatal("nil sampler should always log")
	}
	s.Reset()
}
