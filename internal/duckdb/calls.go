package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/vibe-call/internal/vcf"
)

const callColumns = `seqid, pos, ref, alt, nc, qn, qs, vw, rw, ik, cg, gt`

// WriteCalls batch-inserts calls into DuckDB using the Appender API. Calls
// keep their order across writes.
func (s *Store) WriteCalls(calls []*vcf.Variant) error {
	if len(calls) == 0 {
		return nil
	}

	var next int64
	if err := s.db.QueryRow("SELECT coalesce(max(id), -1) + 1 FROM calls").Scan(&next); err != nil {
		return fmt.Errorf("next call id: %w", err)
	}

	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "calls")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}
	defer appender.Close()

	for i, v := range calls {
		in := v.Info
		if err := appender.AppendRow(
			next+int64(i), v.Seqid, v.Position(), v.Ref, v.Alt, v.Filter(),
			in.NC, in.QN, in.QS, in.VW, in.RW, in.IK, in.CG, in.GT,
		); err != nil {
			return fmt.Errorf("append call: %w", err)
		}
	}

	return appender.Flush()
}

// ClearCalls removes all stored calls.
func (s *Store) ClearCalls() error {
	_, err := s.db.Exec("DELETE FROM calls")
	return err
}

// LookupCalls returns the calls at a 0-based position, in insertion order.
func (s *Store) LookupCalls(seqid string, pos int64) ([]*vcf.Variant, error) {
	rows, err := s.db.Query(`SELECT `+callColumns+`
		FROM calls
		WHERE seqid=? AND pos=?
		ORDER BY id`, seqid, pos)
	if err != nil {
		return nil, fmt.Errorf("query calls: %w", err)
	}
	defer rows.Close()

	return scanCalls(rows)
}

// CallsByQuery returns every call made from the named query contig. Only
// no-calls record the query name.
func (s *Store) CallsByQuery(name string) ([]*vcf.Variant, error) {
	rows, err := s.db.Query(`SELECT `+callColumns+`
		FROM calls
		WHERE qn=?
		ORDER BY id`, name)
	if err != nil {
		return nil, fmt.Errorf("query calls by query: %w", err)
	}
	defer rows.Close()

	return scanCalls(rows)
}

// CallCount returns the number of stored calls.
func (s *Store) CallCount() (int64, error) {
	var n int64
	if err := s.db.QueryRow("SELECT count(*) FROM calls").Scan(&n); err != nil {
		return 0, fmt.Errorf("count calls: %w", err)
	}
	return n, nil
}

// ReasonCount is the number of calls flagged with one NC reason.
type ReasonCount struct {
	Reason string
	Count  int64
}

// Summary breaks the stored calls down by kind.
type Summary struct {
	Total      int64
	SNVs       int64
	Insertions int64
	Deletions  int64
	NoCalls    int64
	Reasons    []ReasonCount // most frequent first
}

// Summarize counts stored calls by kind and by no-call reason. Flagged calls
// that still carry alleles are counted by their alleles and by their reason.
func (s *Store) Summarize() (*Summary, error) {
	var sum Summary
	err := s.db.QueryRow(`SELECT
		count(*),
		count(*) FILTER (WHERE length(ref) = 1 AND length(alt) = 1 AND ref <> alt),
		count(*) FILTER (WHERE length(alt) > length(ref)),
		count(*) FILTER (WHERE length(ref) > length(alt)),
		count(*) FILTER (WHERE ref = '.' AND alt = '.')
		FROM calls`).Scan(&sum.Total, &sum.SNVs, &sum.Insertions, &sum.Deletions, &sum.NoCalls)
	if err != nil {
		return nil, fmt.Errorf("summarize calls: %w", err)
	}

	rows, err := s.db.Query(`SELECT nc, count(*) AS n
		FROM calls
		WHERE nc <> ''
		GROUP BY nc
		ORDER BY n DESC, nc`)
	if err != nil {
		return nil, fmt.Errorf("count no-call reasons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rc ReasonCount
		if err := rows.Scan(&rc.Reason, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan reason count: %w", err)
		}
		sum.Reasons = append(sum.Reasons, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reason counts: %w", err)
	}
	return &sum, nil
}

// scanCalls scans rows into calls.
func scanCalls(rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}) ([]*vcf.Variant, error) {
	var calls []*vcf.Variant
	for rows.Next() {
		var seqid, ref, alt string
		var pos int64
		var in vcf.Info
		if err := rows.Scan(
			&seqid, &pos, &ref, &alt,
			&in.NC, &in.QN, &in.QS, &in.VW, &in.RW, &in.IK, &in.CG, &in.GT,
		); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		calls = append(calls, vcf.New(seqid, pos, ref, alt, in))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}
