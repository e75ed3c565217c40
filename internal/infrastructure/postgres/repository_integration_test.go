package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/pkg/config"
)

// openTestPool conecta a TEST_DATABASE_URL, aplica migraciones y vacía las tablas.
// Sin la variable el test se omite.
func openTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url})
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = postgres.Migrate(ctx, pool)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE products, categories RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return pool
}

func TestCategoryRepo_Postgres(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	repo := postgres.NewCategoryRepository(pool)

	root, err := repo.Save(ctx, &entity.Category{Name: "Electronics"})
	require.NoError(t, err)
	child, err := repo.Save(ctx, &entity.Category{Name: "Mobile phones", ParentID: &root.ID})
	require.NoError(t, err)

	chain, err := repo.AncestorChain(ctx, child.ID)
	require.NoError(t, err)
	assert.Len(t, chain, 2)

	empty, err := repo.AncestorChain(ctx, 9999)
	require.NoError(t, err)
	assert.Empty(t, empty)

	missing := int64(9999)
	_, err = repo.Save(ctx, &entity.Category{Name: "x", ParentID: &missing})
	assert.True(t, domain.IsKind(err, domain.KindParentCategoryDoesNotExist))

	err = repo.DeleteByID(ctx, root.ID)
	assert.True(t, domain.IsKind(err, domain.KindCategoryAssigned), "la FK impide borrar una categoría con hijas")

	// ciclo forzado: el CTE termina igual
	_, err = repo.Save(ctx, &entity.Category{ID: root.ID, Name: "Electronics", ParentID: &child.ID})
	require.NoError(t, err)
	chain, err = repo.AncestorChain(ctx, child.ID)
	require.NoError(t, err)
	assert.Len(t, chain, 2)
}

func TestProductRepo_Postgres(t *testing.T) {
	pool := openTestPool(t)
	ctx := context.Background()
	categories := postgres.NewCategoryRepository(pool)
	products := postgres.NewProductRepository(pool)

	c, err := categories.Save(ctx, &entity.Category{Name: "Books"})
	require.NoError(t, err)

	p, err := products.Save(ctx, &entity.Product{
		Name: "Go in Action", CategoryID: c.ID, Price: decimal.RequireFromString("39.90"), Currency: entity.USD,
	})
	require.NoError(t, err)

	got, err := products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, decimal.RequireFromString("39.90").Equal(got.Price))
	assert.Equal(t, entity.USD, got.Currency)

	// Más de cuatro decimales y valores grandes vuelven sin redondeo.
	for _, raw := range []string{"1.00456", "123456789012345678901234.123456789"} {
		saved, err := products.Save(ctx, &entity.Product{
			Name: "exacto", CategoryID: c.ID, Price: decimal.RequireFromString(raw), Currency: entity.EUR,
		})
		require.NoError(t, err)
		assert.Equal(t, raw, saved.Price.String())

		reread, err := products.GetByID(ctx, saved.ID)
		require.NoError(t, err)
		require.NotNil(t, reread)
		assert.Equal(t, raw, reread.Price.String())
		require.NoError(t, products.DeleteByID(ctx, saved.ID))
	}

	ok, err := products.ExistsByCategory(ctx, c.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, products.DeleteByID(ctx, p.ID))
	got, err = products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
