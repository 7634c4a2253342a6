package services

import (
	"testing"

	"recycle-service/internal/models"
	"recycle-service/pkg/common"

	"github.com/stretchr/testify/assert"
)

func TestCreateProcessGuards(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	trxSvc := newTestTransactionService()
	svc := NewRecyclingService(testDB, NewWasteTypeService(testDB))

	trx, err := trxSvc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Pending material has not been handed over yet
	_, err = svc.Create(CreateProcessDTO{TransactionId: trx.ID})
	assert.True(t, common.IsKind(err, common.KindConflict))

	if _, err = trxSvc.ApplyStatus(trx.ID, models.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	process, err := svc.Create(CreateProcessDTO{TransactionId: trx.ID, Facility: "North Plant"})
	assert.NoError(t, err)
	assert.Equal(t, models.ProcessReceived, process.Status)

	// One process per transaction
	_, err = svc.Create(CreateProcessDTO{TransactionId: trx.ID})
	assert.True(t, common.IsKind(err, common.KindConflict))

	_, err = svc.Create(CreateProcessDTO{TransactionId: 999999})
	assert.True(t, common.IsKind(err, common.KindNotFound))
}

func TestCreateProcessRejectsNonRecyclable(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, _ := seedDirectory(t, 2.0)
	wt := models.WasteType{Name: "Hazardous Sludge", Recyclable: false, UnitPrice: 1}
	testDB.Create(&wt)

	trxSvc := newTestTransactionService()
	svc := NewRecyclingService(testDB, NewWasteTypeService(testDB))

	trx, err := trxSvc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wt.ID, Quantity: 5})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err = trxSvc.ApplyStatus(trx.ID, models.StatusCompleted); err != nil {
		t.Fatalf("complete failed: %v", err)
	}

	_, err = svc.Create(CreateProcessDTO{TransactionId: trx.ID})
	assert.True(t, common.IsKind(err, common.KindValidation))
}

func TestUpdateProcessStatus(t *testing.T) {
	if testDB == nil {
		t.Skip("Database not configured")
	}
	defer cleanup()

	cpId, wtId := seedDirectory(t, 2.0)
	trxSvc := newTestTransactionService()
	svc := NewRecyclingService(testDB, NewWasteTypeService(testDB))

	trx, _ := trxSvc.Create(CreateTransactionDTO{UserId: 101, CollectionPointId: cpId, WasteTypeId: wtId, Quantity: 5})
	trxSvc.ApplyStatus(trx.ID, models.StatusCompleted)
	process, err := svc.Create(CreateProcessDTO{TransactionId: trx.ID})
	if err != nil {
		t.Fatalf("Create process failed: %v", err)
	}

	process, err = svc.UpdateStatus(process.ID, UpdateProcessDTO{Status: models.ProcessProcessing})
	assert.NoError(t, err)
	assert.Equal(t, models.ProcessProcessing, process.Status)

	// Same-state is a no-op
	process, err = svc.UpdateStatus(process.ID, UpdateProcessDTO{Status: models.ProcessProcessing})
	assert.NoError(t, err)

	qty := 4.5
	process, err = svc.UpdateStatus(process.ID, UpdateProcessDTO{Status: models.ProcessProcessed, ProcessedQuantity: &qty})
	assert.NoError(t, err)
	assert.Equal(t, models.ProcessProcessed, process.Status)
	assert.Equal(t, 4.5, process.ProcessedQuantity)

	// Processed is terminal
	_, err = svc.UpdateStatus(process.ID, UpdateProcessDTO{Status: models.ProcessReceived})
	assert.True(t, common.IsKind(err, common.KindConflict))

	bad := -1.0
	_, err = svc.UpdateStatus(process.ID, UpdateProcessDTO{ProcessedQuantity: &bad})
	assert.True(t, common.IsKind(err, common.KindValidation))
}
