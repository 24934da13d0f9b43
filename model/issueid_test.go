package model

import "testing"

func TestIssueIDStable(t *testing.T) {
	a := IssueID(StatusRed, "PDisk is not available", "/Root/db1", "static", "7-3")
	b := IssueID(StatusRed, "PDisk is not available", "/Root/db1", "static", "7-3")
	if a != b {
		t.Fatalf("IssueID not stable: %q != %q", a, b)
	}
}

func TestIssueIDCollidesOnIdenticalDerivation(t *testing.T) {
	a := IssueID(StatusRed, "same message", "db", "pool", "g1")
	b := IssueID(StatusRed, "same message", "db", "pool", "g1")
	if a != b {
		t.Fatal("expected identical derivations to collide to one id")
	}
}

func TestIssueIDDiffersOnAnyField(t *testing.T) {
	base := IssueID(StatusYellow, "msg", "db", "pool", "g1")
	variants := []string{
		IssueID(StatusRed, "msg", "db", "pool", "g1"),
		IssueID(StatusYellow, "other", "db", "pool", "g1"),
		IssueID(StatusYellow, "msg", "other-db", "pool", "g1"),
		IssueID(StatusYellow, "msg", "db", "other-pool", "g1"),
		IssueID(StatusYellow, "msg", "db", "pool", "g2"),
	}
	for _, v := range variants {
		if v == base {
			t.Errorf("expected differing derivation to produce a different id, got collision with %q", base)
		}
	}
}

func TestIssueIDOmitsEmptyScope(t *testing.T) {
	withPool := IssueID(StatusRed, "msg", "db", "pool")
	withoutPool := IssueID(StatusRed, "msg", "db", "")
	if withPool == withoutPool {
		t.Error("expected empty pool name to be omitted, not hashed as an empty string, changing the id")
	}
	if want := "RED-" + crcHex("msg") + "-" + crcHex("db"); withoutPool != want {
		t.Errorf("IssueID with empty pool = %q, want %q (no pool segment)", withoutPool, want)
	}
}
