package models

import "testing"

func TestPKLStatusValid(t *testing.T) {
	for _, s := range PKLStatuses {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	for _, s := range []PKLStatus{"", "diterima", "Menunggu", "Batal"} {
		if s.Valid() {
			t.Errorf("%q should not be valid", s)
		}
	}
}

func TestCanVerifierTransition(t *testing.T) {
	allowed := map[PKLStatus]map[PKLStatus]bool{
		PKLMenungguPersetujuan: {PKLPengajuanDitolak: true, PKLMenungguVerifikasi: true},
		PKLMenungguVerifikasi:  {PKLVerifikasiGagal: true, PKLDitolak: true, PKLGagal: true, PKLDiterima: true},
		PKLMulaiFinalisasi:     {PKLFinalisasiDitolak: true, PKLGagal: true, PKLSelesai: true},
		PKLProsesFinalisasi:    {PKLFinalisasiDitolak: true, PKLGagal: true, PKLSelesai: true},
	}

	for _, from := range PKLStatuses {
		for _, to := range PKLStatuses {
			want := allowed[from][to]
			if got := CanVerifierTransition(from, to); got != want {
				t.Errorf("CanVerifierTransition(%q, %q) = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestVerifierTransitionsNeverTargetStudentStates(t *testing.T) {
	for _, from := range PKLStatuses {
		for _, to := range VerifierTargets(from) {
			if to == PKLMenungguPersetujuan || to == PKLMulaiFinalisasi {
				t.Errorf("%q must not be a verifier target (from %q)", to, from)
			}
		}
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	for _, from := range []PKLStatus{PKLDitolak, PKLGagal, PKLSelesai} {
		if targets := VerifierTargets(from); len(targets) != 0 {
			t.Errorf("terminal status %q has verifier targets %v", from, targets)
		}
		if CanResubmit(from) || CanStartFinalization(from) || CanFinalize(from) {
			t.Errorf("terminal status %q allows a student move", from)
		}
	}
}

func TestStudentMoves(t *testing.T) {
	resubmit := map[PKLStatus]bool{PKLPengajuanDitolak: true, PKLVerifikasiGagal: true}
	finalize := map[PKLStatus]bool{PKLMulaiFinalisasi: true, PKLFinalisasiDitolak: true}

	for _, from := range PKLStatuses {
		if got := CanResubmit(from); got != resubmit[from] {
			t.Errorf("CanResubmit(%q) = %v, want %v", from, got, resubmit[from])
		}
		if got := CanStartFinalization(from); got != (from == PKLDiterima) {
			t.Errorf("CanStartFinalization(%q) = %v", from, got)
		}
		if got := CanFinalize(from); got != finalize[from] {
			t.Errorf("CanFinalize(%q) = %v, want %v", from, got, finalize[from])
		}
	}
}
