package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"meal-planner/internal/core/grocery"
	"meal-planner/internal/pkg/common"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS meal_plans (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT '',
	goals TEXT NOT NULL DEFAULT '',
	target_group TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS meals (
	id TEXT PRIMARY KEY,
	plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
	recipe_id TEXT NOT NULL DEFAULT '',
	recipe_name TEXT NOT NULL DEFAULT '',
	day INTEGER NOT NULL DEFAULT 0,
	meal_type TEXT NOT NULL DEFAULT '',
	servings INTEGER NOT NULL DEFAULT 1
);

CREATE TABLE IF NOT EXISTS recipe_ingredients (
	recipe_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	name TEXT,
	amount TEXT,
	unit TEXT,
	category TEXT,
	PRIMARY KEY (recipe_id, position)
);

CREATE TABLE IF NOT EXISTS meal_plan_groups (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS meal_plan_group_members (
	group_id TEXT NOT NULL REFERENCES meal_plan_groups(id) ON DELETE CASCADE,
	plan_id TEXT NOT NULL REFERENCES meal_plans(id) ON DELETE CASCADE,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (group_id, plan_id)
);

CREATE TABLE IF NOT EXISTS grocery_lists (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	store_name TEXT NOT NULL DEFAULT '',
	total_cost DOUBLE PRECISION NOT NULL DEFAULT 0,
	items JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
`

// PostgresStore PostgreSQL 儲存
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore 連線並建立資料表
func NewPostgresStore(dataSourceName string) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// ingredientRow amount 以文字儲存，讀取時解析
type ingredientRow struct {
	Name     sql.NullString `db:"name"`
	Amount   sql.NullString `db:"amount"`
	Unit     sql.NullString `db:"unit"`
	Category sql.NullString `db:"category"`
}

// GetRecipeIngredients 實現 grocery.Repository
func (s *PostgresStore) GetRecipeIngredients(ctx context.Context, recipeID string) ([]grocery.RawIngredientLine, error) {
	var rows []ingredientRow
	err := s.db.SelectContext(ctx, &rows,
		"SELECT name, amount, unit, category FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position",
		recipeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe ingredients: %w", err)
	}

	lines := make([]grocery.RawIngredientLine, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, grocery.RawIngredientLine{
			Name:     r.Name.String,
			Amount:   grocery.ParseAmount(r.Amount.String),
			Unit:     r.Unit.String,
			Category: r.Category.String,
		})
	}
	return lines, nil
}

// GetMealPlan 實現 grocery.Repository
func (s *PostgresStore) GetMealPlan(ctx context.Context, id, userID string) (*grocery.MealPlan, error) {
	var plan grocery.MealPlan
	err := s.db.GetContext(ctx, &plan,
		"SELECT id, user_id, name, goals, target_group FROM meal_plans WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound.Wrap(fmt.Errorf("meal plan %s not found", id))
		}
		return nil, fmt.Errorf("failed to get meal plan: %w", err)
	}
	return &plan, nil
}

// GetMealsForPlan 實現 grocery.Repository
func (s *PostgresStore) GetMealsForPlan(ctx context.Context, planID string) ([]grocery.Meal, error) {
	meals := make([]grocery.Meal, 0)
	err := s.db.SelectContext(ctx, &meals,
		"SELECT id, plan_id, recipe_id, recipe_name, day, meal_type, servings FROM meals WHERE plan_id = $1 ORDER BY day, id",
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get meals: %w", err)
	}
	return meals, nil
}

// GetMealPlanGroup 實現 grocery.Repository
func (s *PostgresStore) GetMealPlanGroup(ctx context.Context, id, userID string) (*grocery.MealPlanGroup, error) {
	var group grocery.MealPlanGroup
	err := s.db.QueryRowContext(ctx,
		"SELECT id, user_id, name FROM meal_plan_groups WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(&group.ID, &group.UserID, &group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound.Wrap(fmt.Errorf("meal plan group %s not found", id))
		}
		return nil, fmt.Errorf("failed to get meal plan group: %w", err)
	}

	err = s.db.SelectContext(ctx, &group.PlanIDs,
		"SELECT plan_id FROM meal_plan_group_members WHERE group_id = $1 ORDER BY position, plan_id",
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get meal plan group members: %w", err)
	}
	return &group, nil
}

// SaveGroceryList 實現 grocery.Repository
func (s *PostgresStore) SaveGroceryList(ctx context.Context, list *grocery.GroceryList) error {
	itemsJSON, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal grocery items: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO grocery_lists (id, user_id, name, store_name, total_cost, items, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (id) DO UPDATE SET name = $3, store_name = $4, total_cost = $5, items = $6",
		list.ID,
		list.UserID,
		list.Name,
		list.StoreName,
		list.TotalCost,
		itemsJSON,
		list.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save grocery list: %w", err)
	}
	return nil
}

// Ping 實現 Store
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close 實現 Store
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
