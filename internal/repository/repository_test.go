package repository

import (
	"context"
	"testing"
	"time"

	"flota/internal/apierror"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestCamionFindByID_OtroTenantEsNoEncontrado(t *testing.T) {
	db, mock := newMockDB(t)
	tenant, id := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "camiones" WHERE tenant_id = \$1 AND id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "placa"}))

	c, err := NewStore(db).Camiones().FindByID(context.Background(), tenant, id)
	assert.Nil(t, c)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCamionFindByID(t *testing.T) {
	db, mock := newMockDB(t)
	tenant, id := uuid.New(), uuid.New()

	rows := sqlmock.NewRows([]string{"id", "tenant_id", "placa", "modelo_pago", "tipo_calculo", "monto_base", "kilometraje_actual", "activo"}).
		AddRow(id.String(), tenant.String(), "ABC-123", "DUENO_PAGA", "IDA_VUELTA", "500.00", 120000, true)
	mock.ExpectQuery(`SELECT \* FROM "camiones" WHERE tenant_id = \$1 AND id = \$2`).WillReturnRows(rows)

	c, err := NewStore(db).Camiones().FindByID(context.Background(), tenant, id)
	require.NoError(t, err)
	assert.Equal(t, "ABC-123", c.Placa)
	assert.Equal(t, "500.00", c.MontoBase.StringFixed(2))
	assert.Equal(t, 120000, c.KilometrajeActual)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAvanzarKilometraje_SinFilasEsNoEncontrado(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(`UPDATE "camiones" SET "kilometraje_actual"=GREATEST\(kilometraje_actual, \$1\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewStore(db).Camiones().AvanzarKilometraje(context.Background(), uuid.New(), uuid.New(), 1000)
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumCompletados(t *testing.T) {
	db, mock := newMockDB(t)
	desde := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(ingreso\), 0\) AS ingreso, COALESCE\(SUM\(ganancia\), 0\) AS ganancia FROM "fletes" WHERE tenant_id = \$1 AND estado = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"ingreso", "ganancia"}).AddRow("3000.00", "1250.50"))

	tot, err := NewStore(db).Fletes().SumCompletados(context.Background(), uuid.New(), desde, desde.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.Equal(t, "3000.00", tot.Ingreso.StringFixed(2))
	assert.Equal(t, "1250.50", tot.Ganancia.StringFixed(2))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumTotalCombustible_MesVacio(t *testing.T) {
	db, mock := newMockDB(t)
	desde := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total\), 0\) AS total FROM "cargas_combustible"`).
		WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

	total, err := NewStore(db).Combustible().SumTotal(context.Background(), uuid.New(), desde, desde.AddDate(0, 1, 0))
	require.NoError(t, err)
	assert.True(t, total.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindActivoForUpdate_BloqueaYSinPlanDevuelveNil(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "planes_mantenimiento" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	p, err := NewStore(db).Planes().FindActivoForUpdate(context.Background(), uuid.New(), uuid.New(), "cambio_aceite")
	assert.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByIDForUpdate_Bloquea(t *testing.T) {
	db, mock := newMockDB(t)
	tenant, id := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "camiones" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "kilometraje_actual"}).AddRow(id, tenant, 15500))
	mock.ExpectQuery(`SELECT \* FROM "planes_mantenimiento" WHERE .* FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	store := NewStore(db)
	c, err := store.Camiones().FindByIDForUpdate(context.Background(), tenant, id)
	require.NoError(t, err)
	assert.Equal(t, 15500, c.KilometrajeActual)

	_, err = store.Planes().FindByIDForUpdate(context.Background(), tenant, uuid.New())
	assert.True(t, apierror.Is(err, apierror.KindNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_RollbackEnError(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := NewStore(db).WithTx(context.Background(), func(tx Store) error {
		return apierror.Validacion("kilometraje inválido")
	})
	assert.True(t, apierror.Is(err, apierror.KindValidation))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil, "x"))
	assert.True(t, apierror.Is(translate(gorm.ErrRecordNotFound, "camión"), apierror.KindNotFound))
	assert.True(t, apierror.Is(translate(gorm.ErrDuplicatedKey, "camión"), apierror.KindConflict))
	assert.True(t, apierror.Is(translate(gorm.ErrForeignKeyViolated, "camión"), apierror.KindConflict))
	assert.True(t, apierror.Is(translate(assert.AnError, "camión"), apierror.KindInternal))

	orig := apierror.Validacion("x")
	assert.Same(t, orig, translate(orig, "camión"))
}
