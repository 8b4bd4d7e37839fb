package postgre

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/cases/repository"
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
	pkgpostgre "github.com/rodgerswisdom/safegal-guardian-alert/pkg/postgre"
)

const caseColumns = `id, case_code, reporter_id, county, age_band, risk_tags, redacted_note,
		risk_score, risk_reasons, status, is_spike, created_at, updated_at`

func (r *implRepository) BeginTx(ctx context.Context) (pkgpostgre.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.BeginTx: Failed to begin transaction: %v", err)
		return nil, repository.ErrTxBeginFailed
	}
	return tx, nil
}

func (r *implRepository) InsertCase(ctx context.Context, tx pkgpostgre.Tx, opts repository.InsertCaseOptions) error {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return err
	}

	_, err = t.ExecContext(ctx, `
		INSERT INTO cases (id, case_code, reporter_id, county, age_band, risk_tags, redacted_note,
			risk_score, risk_reasons, status, is_spike, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, FALSE, $11, $11)`,
		opts.ID, opts.CaseCode, opts.ReporterID, opts.County, opts.AgeBand,
		pq.Array(opts.RiskTags), opts.RedactedNote, opts.RiskScore,
		pq.Array(opts.RiskReasons), opts.Status, opts.CreatedAt)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.InsertCase: Failed to insert case: %v", err)
		return repository.ErrCaseInsertFailed
	}
	return nil
}

func (r *implRepository) GetCase(ctx context.Context, id string) (model.Case, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1`, id)
	return r.scanCase(ctx, row)
}

func (r *implRepository) GetCaseByCode(ctx context.Context, code string) (model.Case, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE case_code = $1`, code)
	return r.scanCase(ctx, row)
}

func (r *implRepository) GetCaseForUpdate(ctx context.Context, tx pkgpostgre.Tx, id string) (model.Case, error) {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return model.Case{}, err
	}
	row := t.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = $1 FOR UPDATE`, id)
	return r.scanCase(ctx, row)
}

func (r *implRepository) UpdateCaseStatus(ctx context.Context, tx pkgpostgre.Tx, opts repository.UpdateCaseStatusOptions) error {
	t, err := pkgpostgre.SQLTx(tx)
	if err != nil {
		return err
	}

	res, err := t.ExecContext(ctx, `
		UPDATE cases
		SET status = $2, updated_at = $3
		WHERE id = $1`, opts.ID, opts.Status, opts.UpdatedAt)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.UpdateCaseStatus: Failed to update case: %v", err)
		return repository.ErrCaseUpdateFailed
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return repository.ErrCaseNotFound
	}
	return nil
}

func (r *implRepository) SetSpike(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE cases
		SET is_spike = TRUE, updated_at = NOW()
		WHERE id = $1`, id)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.SetSpike: Failed to flag case: %v", err)
		return repository.ErrCaseUpdateFailed
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return repository.ErrCaseNotFound
	}
	return nil
}

func (r *implRepository) ListCases(ctx context.Context, opts repository.ListCasesOptions) ([]model.Case, error) {
	where, args := buildCaseFilter(opts)
	query := `SELECT ` + caseColumns + ` FROM cases` + where +
		` ORDER BY created_at DESC LIMIT ` + strconv.FormatInt(opts.PagQuery.Limit, 10) +
		` OFFSET ` + strconv.FormatInt(opts.PagQuery.Offset(), 10)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.ListCases: Failed to query cases: %v", err)
		return nil, repository.ErrCaseFetchFailed
	}
	defer rows.Close()

	var cases []model.Case
	for rows.Next() {
		c, err := r.scanCaseRow(ctx, rows)
		if err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.ListCases: Failed to iterate cases: %v", err)
		return nil, repository.ErrCaseFetchFailed
	}
	return cases, nil
}

func (r *implRepository) CountCases(ctx context.Context, opts repository.ListCasesOptions) (int64, error) {
	where, args := buildCaseFilter(opts)

	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cases`+where, args...).Scan(&count); err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.CountCases: Failed to count cases: %v", err)
		return 0, repository.ErrCaseFetchFailed
	}
	return count, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *implRepository) scanCase(ctx context.Context, row *sql.Row) (model.Case, error) {
	c, err := scanInto(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Case{}, repository.ErrCaseNotFound
		}
		r.l.Errorf(ctx, "cases.repository.postgre.scanCase: Failed to scan case: %v", err)
		return model.Case{}, repository.ErrCaseFetchFailed
	}
	return c, nil
}

func (r *implRepository) scanCaseRow(ctx context.Context, rows *sql.Rows) (model.Case, error) {
	c, err := scanInto(rows)
	if err != nil {
		r.l.Errorf(ctx, "cases.repository.postgre.scanCaseRow: Failed to scan case: %v", err)
		return model.Case{}, repository.ErrCaseFetchFailed
	}
	return c, nil
}

func scanInto(s rowScanner) (model.Case, error) {
	var c model.Case
	err := s.Scan(&c.ID, &c.CaseCode, &c.ReporterID, &c.County, &c.AgeBand,
		pq.Array(&c.RiskTags), &c.RedactedNote, &c.RiskScore,
		pq.Array(&c.RiskReasons), &c.Status, &c.IsSpike, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func buildCaseFilter(opts repository.ListCasesOptions) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if opts.ReporterID != "" {
		args = append(args, opts.ReporterID)
		conds = append(conds, "reporter_id = $"+strconv.Itoa(len(args)))
	}
	if opts.County != "" {
		args = append(args, opts.County)
		conds = append(conds, "county = $"+strconv.Itoa(len(args)))
	}
	if opts.Status != "" {
		args = append(args, opts.Status)
		conds = append(conds, "status = $"+strconv.Itoa(len(args)))
	}
	if opts.MinScore > 0 {
		args = append(args, opts.MinScore)
		conds = append(conds, "risk_score >= $"+strconv.Itoa(len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}
