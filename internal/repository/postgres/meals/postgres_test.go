package meals

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return NewPostgres(gormDB), mock
}

func TestListMealsAssemblesLinesAndTags(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT "meals"\."id","meals"\."name","meals"\."description","meals"\."guide" FROM "meals" join meal_groups`).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "guide"}).
			AddRow(1, "Pancakes", nil, "Fry").
			AddRow(2, "Toast", nil, nil))

	mock.ExpectQuery(`SELECT mi.meal_id, mi.count, mi.unit`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"meal_id", "count", "unit", "ingredient_id", "ingredient_name", "default_unit", "tag_id", "tag_name"}).
			AddRow(1, 2.0, "cup", 10, "Flour", "g", 100, "Baking").
			AddRow(1, 2.0, "cup", 10, "Flour", "g", 101, "Dry").
			AddRow(1, 1.0, nil, 11, "Egg", nil, nil, nil))

	mock.ExpectQuery(`SELECT meal_tag_assignments.meal_id, meal_tags.id, meal_tags.name FROM "meal_tag_assignments"`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"meal_id", "id", "name"}).
			AddRow(2, 7, "Breakfast"))

	meals, err := repo.ListMeals(context.Background(), "g1")
	require.NoError(t, err)
	require.Len(t, meals, 2)

	pancakes := meals[0]
	require.Len(t, pancakes.Ingredients, 2)
	assert.Equal(t, "Flour", pancakes.Ingredients[0].Ingredient.Name)
	assert.Len(t, pancakes.Ingredients[0].Ingredient.Tags, 2)
	assert.Equal(t, 1.0, pancakes.Ingredients[1].Count)
	assert.Nil(t, pancakes.Ingredients[1].Unit)
	assert.Empty(t, pancakes.Tags)

	toast := meals[1]
	assert.Empty(t, toast.Ingredients)
	require.Len(t, toast.Tags, 1)
	assert.Equal(t, "Breakfast", toast.Tags[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListMealsEmptyGroup(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM "meals" join meal_groups`).
		WithArgs("g1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "guide"}))

	meals, err := repo.ListMeals(context.Background(), "g1")
	require.NoError(t, err)
	assert.NotNil(t, meals)
	assert.Empty(t, meals)
	require.NoError(t, mock.ExpectationsWereMet())
}
