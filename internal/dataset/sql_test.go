package dataset

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/hrdash/internal/testutil"
	"github.com/leapstack-labs/hrdash/pkg/core"
)

var fullHeader = []string{
	"EmpID", "Employee_Name", "Sex", "RaceDesc", "CitizenDesc", "State", "Salary", "DOB",
	"DateofHire", "DateofTermination", "LastPerformanceReview_Date",
	"EmploymentStatus", "RecruitmentSource", "EmpSatisfaction", "Absences",
}

func mockSource(t *testing.T, d dialect, from string) (*sqlSource, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	src := &sqlSource{
		dialect: d,
		label:   "hr.employees",
		from:    from,
		logger:  testutil.NewTestLogger(t),
		now:     func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) },
		open:    func(context.Context) (*sql.DB, error) { return db, nil },
	}
	return src, mock
}

func TestSQLSource_Load(t *testing.T) {
	src, mock := mockSource(t, postgresDialect, `"employees"`)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" LIMIT 0`)).
		WillReturnRows(sqlmock.NewRows(fullHeader))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT CAST("Employee_Name" AS TEXT), CAST("Sex" AS TEXT)`) + `.*` +
		regexp.QuoteMeta(`CAST("Absences" AS TEXT) FROM "employees"`)).
		WillReturnRows(sqlmock.NewRows(make([]string, 14)).
			AddRow("Doe, Jane", "Female", "White", "US Citizen", "MA", "45000.00", "1980-01-02",
				"2010-03-04", nil, "2019-01-01", "Active", "Indeed", "3", "4").
			AddRow("Roe, Rick", "Male", "Asian", "US Citizen", "TX", nil, "1975-05-06",
				"2012-07-08", "2015-01-01", nil, "Voluntarily Terminated", "LinkedIn", "5", "0"))
	mock.ExpectClose()

	tbl, err := src.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, tbl.Len())

	jane := tbl.At(0)
	assert.Equal(t, "Doe, Jane", jane.Name)
	assert.Equal(t, 45000.0, jane.Salary)
	assert.True(t, jane.TerminationDate.IsZero())
	assert.Equal(t, 2010, jane.HireDate.Year())
	assert.Equal(t, 4, jane.Absences)

	rick := tbl.At(1)
	assert.False(t, rick.HasSalary)
	assert.True(t, rick.Terminated())
	assert.Equal(t, 5, rick.Satisfaction)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_MissingColumns(t *testing.T) {
	src, mock := mockSource(t, mysqlDialect, "`employees`")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `employees` LIMIT 0")).
		WillReturnRows(sqlmock.NewRows([]string{"Employee_Name", "Sex"}))
	mock.ExpectClose()

	_, err := src.Load(context.Background())
	var loadErr *core.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Missing, "Salary")
	assert.NotContains(t, loadErr.Missing, "Sex")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLSource_RowError(t *testing.T) {
	src, mock := mockSource(t, sqliteDialect, `"employees"`)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "employees" LIMIT 0`)).
		WillReturnRows(sqlmock.NewRows(fullHeader))
	mock.ExpectQuery(`SELECT CAST`).
		WillReturnRows(sqlmock.NewRows(make([]string, 14)).
			AddRow("Doe, Jane", "Female", "White", "US Citizen", "MA", "45000", nil,
				"2010-03-04", nil, nil, "Active", "Indeed", "3", "4"))
	mock.ExpectClose()

	_, err := src.Load(context.Background())
	var loadErr *core.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, 1, loadErr.Row)
	assert.Equal(t, "load hr.employees: row 1: column DOB: date is required", err.Error())
}

func TestSQLSource_ProbeFailure(t *testing.T) {
	src, mock := mockSource(t, postgresDialect, `"employees"`)

	mock.ExpectQuery(`LIMIT 0`).WillReturnError(errors.New(`relation "employees" does not exist`))
	mock.ExpectClose()

	_, err := src.Load(context.Background())
	var loadErr *core.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, err.Error(), "probe columns")
}

func TestSQLSource_OpenFailure(t *testing.T) {
	src := &sqlSource{
		label:  "hr.employees",
		logger: testutil.NewTestLogger(t),
		now:    time.Now,
		open: func(context.Context) (*sql.DB, error) {
			return nil, errors.New("connection refused")
		},
	}

	_, err := src.Load(context.Background())
	var loadErr *core.LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "load hr.employees: connection refused", err.Error())
}

func TestDialect_QuoteIdent(t *testing.T) {
	assert.Equal(t, `"employees"`, postgresDialect.quoteIdent("employees"))
	assert.Equal(t, `"hr"."employees"`, postgresDialect.quoteIdent("hr.employees"))
	assert.Equal(t, `"we""ird"`, sqliteDialect.quoteIdent(`we"ird`))
	assert.Equal(t, "`hr`.`employees`", mysqlDialect.quoteIdent("hr.employees"))
	assert.Equal(t, `'it''s'`, quoteLiteral("it's"))
}
