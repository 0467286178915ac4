package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/permission"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

func TestRenderShoppingList(t *testing.T) {
	date := time.Date(2024, time.March, 8, 16, 30, 0, 0, time.UTC)
	totals := []repository.IngredientTotal{
		{Name: "Pepper", MeasurementUnit: "pinch", Total: 2},
		{Name: "Salt", MeasurementUnit: "g", Total: 12},
	}

	got := RenderShoppingList("Ada Lovelace", date, totals)

	want := "Shopping list for: Ada Lovelace\n\n" +
		"Date: 2024-03-08\n\n" +
		"- Pepper (pinch) - 2\n" +
		"- Salt (g) - 12"
	assert.Equal(t, want, got)
}

func TestRenderShoppingListEmptyCart(t *testing.T) {
	date := time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)

	got := RenderShoppingList("Ada Lovelace", date, nil)

	assert.Equal(t, "Shopping list for: Ada Lovelace\n\nDate: 2024-03-08\n\n", got)
}

func TestRenderShoppingListUnknownUnitFallsBack(t *testing.T) {
	totals := []repository.IngredientTotal{
		{Name: "Mystery", MeasurementUnit: "cubit", Total: 1},
	}

	got := RenderShoppingList("A B", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), totals)
	assert.Contains(t, got, "- Mystery (cubit) - 1")
}

type cartFixture struct {
	service     *ShoppingCartService
	recipes     *fakeRecipeRepo
	users       *fakeUserRepo
	ingredients *fakeIngredientRepo
	cart        *fakeCartRepo
	user        *models.User
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()

	users := newFakeUserRepo()
	user := users.add(models.User{Username: "chef", Email: "chef@example.com", FirstName: "Ada", LastName: "Lovelace"})

	ingredients := newFakeIngredientRepo(
		models.Ingredient{ID: 1, Name: "Salt", MeasurementUnit: "g"},
		models.Ingredient{ID: 2, Name: "Pepper", MeasurementUnit: "pinch"},
	)
	recipes := newFakeRecipeRepo(users, ingredients)
	cart := newFakeCartRepo(recipes)

	svc := NewShoppingCartService(cart, recipes, users)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 8, 12, 0, 0, 0, time.UTC)
	}

	return &cartFixture{
		service:     svc,
		recipes:     recipes,
		users:       users,
		ingredients: ingredients,
		cart:        cart,
		user:        user,
	}
}

func TestBuildShoppingListAggregatesAcrossRecipes(t *testing.T) {
	f := newCartFixture(t)

	salt := models.Ingredient{ID: 1, Name: "Salt", MeasurementUnit: "g"}
	pepper := models.Ingredient{ID: 2, Name: "Pepper", MeasurementUnit: "pinch"}

	soup := f.recipes.add(models.Recipe{
		AuthorID: f.user.ID,
		Name:     "Soup",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: 1, Ingredient: salt, Amount: 5},
			{IngredientID: 2, Ingredient: pepper, Amount: 2},
		},
	})
	stew := f.recipes.add(models.Recipe{
		AuthorID: f.user.ID,
		Name:     "Stew",
		Ingredients: []models.RecipeIngredient{
			{IngredientID: 1, Ingredient: salt, Amount: 7},
		},
	})

	_, err := f.service.Add(context.Background(), f.user.ID, soup.ID)
	require.NoError(t, err)
	_, err = f.service.Add(context.Background(), f.user.ID, stew.ID)
	require.NoError(t, err)

	filename, content, err := f.service.BuildShoppingList(context.Background(), f.user.ID)
	require.NoError(t, err)

	assert.Equal(t, "chef_shopping_list.txt", filename)

	// Salt is summed across both recipes; lines come out name-ordered.
	want := "Shopping list for: Ada Lovelace\n\n" +
		"Date: 2024-03-08\n\n" +
		"- Pepper (pinch) - 2\n" +
		"- Salt (g) - 12"
	assert.Equal(t, want, content)
}

// The export tracks recipe writes end to end: created and updated
// ingredient lines flow through the cart aggregation unchanged.
func TestShoppingListFollowsRecipeWrites(t *testing.T) {
	f := newCartFixture(t)

	tags := newFakeTagRepo(models.Tag{ID: 1, Name: "Dinner", Color: "#8775D2", Slug: "dinner"})
	recipeSvc := NewRecipeService(
		f.recipes, tags, f.ingredients,
		newFakeFavoriteRepo(), f.cart, newFakeSubscriptionRepo(f.users),
		newFakeImageStorage(), 1, 999,
	)
	author := permission.Principal{UserID: f.user.ID, Authenticated: true}

	soup, err := recipeSvc.CreateRecipe(context.Background(), author, models.RecipeRequest{
		Name:        "Soup",
		Text:        "Boil.",
		CookingTime: 30,
		Image:       "recipes/soup.png",
		Tags:        []uint{1},
		Ingredients: []models.IngredientLineRequest{
			{ID: 1, Amount: 5},
			{ID: 2, Amount: 2},
		},
	})
	require.NoError(t, err)

	_, err = f.service.Add(context.Background(), f.user.ID, soup.ID)
	require.NoError(t, err)

	_, content, err := f.service.BuildShoppingList(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Contains(t, content, "- Pepper (pinch) - 2\n- Salt (g) - 5")

	stew, err := recipeSvc.CreateRecipe(context.Background(), author, models.RecipeRequest{
		Name:        "Stew",
		Text:        "Simmer.",
		CookingTime: 60,
		Image:       "recipes/stew.png",
		Tags:        []uint{1},
		Ingredients: []models.IngredientLineRequest{{ID: 1, Amount: 3}},
	})
	require.NoError(t, err)

	_, err = f.service.Add(context.Background(), f.user.ID, stew.ID)
	require.NoError(t, err)

	_, content, err = f.service.BuildShoppingList(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Contains(t, content, "- Pepper (pinch) - 2\n- Salt (g) - 8")

	// Replacing the soup's lines drops its pepper from the export.
	_, err = recipeSvc.UpdateRecipe(context.Background(), author, soup.ID, models.UpdateRecipeRequest{
		Tags:        []uint{1},
		Ingredients: []models.IngredientLineRequest{{ID: 1, Amount: 10}},
	})
	require.NoError(t, err)

	_, content, err = f.service.BuildShoppingList(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.NotContains(t, content, "Pepper")
	assert.Contains(t, content, "- Salt (g) - 13")
}

func TestBuildShoppingListUnknownUser(t *testing.T) {
	f := newCartFixture(t)

	_, _, err := f.service.BuildShoppingList(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAddToCart(t *testing.T) {
	f := newCartFixture(t)

	recipe := f.recipes.add(models.Recipe{AuthorID: f.user.ID, Name: "Soup", Image: "recipes/soup.png", CookingTime: 30})

	resp, err := f.service.Add(context.Background(), f.user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipe.ID, resp.ID)
	assert.Equal(t, "Soup", resp.Name)
	assert.Equal(t, 30, resp.CookingTime)

	_, err = f.service.Add(context.Background(), f.user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrAlreadyInCart)
}

func TestAddToCartMissingRecipe(t *testing.T) {
	f := newCartFixture(t)

	_, err := f.service.Add(context.Background(), f.user.ID, 404)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestRemoveFromCart(t *testing.T) {
	f := newCartFixture(t)

	recipe := f.recipes.add(models.Recipe{AuthorID: f.user.ID, Name: "Soup"})

	_, err := f.service.Add(context.Background(), f.user.ID, recipe.ID)
	require.NoError(t, err)
	require.NoError(t, f.service.Remove(context.Background(), f.user.ID, recipe.ID))

	err = f.service.Remove(context.Background(), f.user.ID, recipe.ID)
	assert.ErrorIs(t, err, ErrNotInCart)
}
