package services

import (
	"testing"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/patch"
	"fintrack/internal/testutil"
)

func TestCreateBudget(t *testing.T) {
	t.Run("defaults_to_monthly", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		budget, err := svc.CreateBudget(user.ID, BudgetInput{Category: "Groceries", LimitAmount: 500})
		testutil.AssertNoError(t, err)

		if budget.ID == 0 {
			t.Fatal("expected non-zero budget ID")
		}
		if budget.Period != models.BudgetPeriodMonthly {
			t.Errorf("expected period monthly, got %s", budget.Period)
		}
	})

	t.Run("same_category_twice", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, BudgetInput{Category: "Food", LimitAmount: 100})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateBudget(user.ID, BudgetInput{Category: "Food", LimitAmount: 200, Period: models.BudgetPeriodYearly})
		testutil.AssertNoError(t, err)

		budgets, err := svc.ListBudgets(user.ID, pagination.New(0, 0))
		testutil.AssertNoError(t, err)
		if len(budgets) != 2 {
			t.Errorf("expected 2 budgets, got %d", len(budgets))
		}
	})

	t.Run("non_positive_limit", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)

		_, err := svc.CreateBudget(user.ID, BudgetInput{Category: "Food", LimitAmount: -1})
		testutil.AssertFieldError(t, err, "limit_amount", "gt")
	})
}

func TestListBudgets(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user1 := testutil.CreateTestUser(t, db)
	user2 := testutil.CreateTestUser(t, db)

	testutil.CreateTestBudget(t, db, user1.ID, "Food", 100)
	testutil.CreateTestBudget(t, db, user1.ID, "Rent", 900)
	testutil.CreateTestBudget(t, db, user2.ID, "Food", 50)

	budgets, err := svc.ListBudgets(user1.ID, pagination.New(0, 0))
	testutil.AssertNoError(t, err)

	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].Category != "Food" || budgets[1].Category != "Rent" {
		t.Errorf("expected creation order, got %s, %s", budgets[0].Category, budgets[1].Category)
	}
}

func TestUpdateBudget(t *testing.T) {
	t.Run("partial", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		user := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 100)

		updated, err := svc.UpdateBudget(user.ID, budget.ID, BudgetPatch{Period: patch.Of(models.BudgetPeriodWeekly)})
		testutil.AssertNoError(t, err)

		if updated.Period != models.BudgetPeriodWeekly {
			t.Errorf("expected weekly, got %s", updated.Period)
		}
		if updated.LimitAmount != 100 || updated.Category != "Food" {
			t.Errorf("expected other fields unchanged, got %+v", updated)
		}
	})

	t.Run("wrong_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewBudgetService(db)
		owner := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		budget := testutil.CreateTestBudget(t, db, owner.ID, "Food", 100)

		_, err := svc.UpdateBudget(other.ID, budget.ID, BudgetPatch{LimitAmount: patch.Of(1.0)})
		testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")
	})
}

func TestDeleteBudget(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewBudgetService(db)
	user := testutil.CreateTestUser(t, db)
	budget := testutil.CreateTestBudget(t, db, user.ID, "Food", 100)

	testutil.AssertNoError(t, svc.DeleteBudget(user.ID, budget.ID))

	_, err := svc.GetBudgetByID(user.ID, budget.ID)
	testutil.AssertAppError(t, err, "BUDGET_NOT_FOUND")

	testutil.AssertAppError(t, svc.DeleteBudget(user.ID, 9999), "BUDGET_NOT_FOUND")
}
