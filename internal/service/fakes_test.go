package service

import (
	"context"
	"sort"
	"strings"

	"github.com/sefazor/recipebook-backend/internal/models"
	"github.com/sefazor/recipebook-backend/internal/repository"
)

// In-memory repositories so the services can be exercised without a
// database. They mirror the behavior of the gorm implementations,
// including the sentinel errors.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) add(user models.User) *models.User {
	if user.ID == 0 {
		user.ID = r.nextID
	}
	if user.ID >= r.nextID {
		r.nextID = user.ID + 1
	}
	stored := user
	r.users[stored.ID] = &stored
	return &stored
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email || existing.Username == user.Username {
			return repository.ErrDuplicate
		}
	}
	user.ID = r.nextID
	r.nextID++
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) {
	ids := make([]uint, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, *r.users[id])
	}
	return users, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id uint, hashedPassword string) error {
	user, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	user.Password = hashedPassword
	return nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) UsernameExists(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if strings.EqualFold(user.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

type fakeTagRepo struct {
	tags map[uint]models.Tag
}

func newFakeTagRepo(tags ...models.Tag) *fakeTagRepo {
	repo := &fakeTagRepo{tags: make(map[uint]models.Tag)}
	for _, tag := range tags {
		repo.tags[tag.ID] = tag
	}
	return repo
}

func (r *fakeTagRepo) Create(_ context.Context, tag *models.Tag) error {
	tag.ID = uint(len(r.tags) + 1)
	r.tags[tag.ID] = *tag
	return nil
}

func (r *fakeTagRepo) GetByID(_ context.Context, id uint) (*models.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &tag, nil
}

func (r *fakeTagRepo) GetByIDs(_ context.Context, ids []uint) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range ids {
		if tag, ok := r.tags[id]; ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

func (r *fakeTagRepo) List(_ context.Context) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(r.tags))
	for _, tag := range r.tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tags, id)
	return nil
}

type fakeIngredientRepo struct {
	ingredients map[uint]models.Ingredient
}

func newFakeIngredientRepo(ingredients ...models.Ingredient) *fakeIngredientRepo {
	repo := &fakeIngredientRepo{ingredients: make(map[uint]models.Ingredient)}
	for _, ingredient := range ingredients {
		repo.ingredients[ingredient.ID] = ingredient
	}
	return repo
}

func (r *fakeIngredientRepo) Create(_ context.Context, ingredient *models.Ingredient) error {
	ingredient.ID = uint(len(r.ingredients) + 1)
	r.ingredients[ingredient.ID] = *ingredient
	return nil
}

func (r *fakeIngredientRepo) GetByID(_ context.Context, id uint) (*models.Ingredient, error) {
	ingredient, ok := r.ingredients[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &ingredient, nil
}

func (r *fakeIngredientRepo) GetByIDs(_ context.Context, ids []uint) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	for _, id := range ids {
		if ingredient, ok := r.ingredients[id]; ok {
			ingredients = append(ingredients, ingredient)
		}
	}
	return ingredients, nil
}

func (r *fakeIngredientRepo) Search(_ context.Context, namePrefix string) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	for _, ingredient := range r.ingredients {
		if strings.HasPrefix(strings.ToLower(ingredient.Name), strings.ToLower(namePrefix)) {
			ingredients = append(ingredients, ingredient)
		}
	}
	sort.Slice(ingredients, func(i, j int) bool { return ingredients[i].Name < ingredients[j].Name })
	return ingredients, nil
}

func (r *fakeIngredientRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.ingredients[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.ingredients, id)
	return nil
}

type fakeRecipeRepo struct {
	recipes     map[uint]*models.Recipe
	users       *fakeUserRepo
	ingredients *fakeIngredientRepo
	nextID      uint
}

func newFakeRecipeRepo(users *fakeUserRepo, ingredients *fakeIngredientRepo) *fakeRecipeRepo {
	return &fakeRecipeRepo{
		recipes:     make(map[uint]*models.Recipe),
		users:       users,
		ingredients: ingredients,
		nextID:      1,
	}
}

// loaded mimics the gorm Preload on reads: the author and each line's
// ingredient are resolved from their repositories.
func (r *fakeRecipeRepo) loaded(recipe models.Recipe) models.Recipe {
	if r.users != nil {
		if author, ok := r.users.users[recipe.AuthorID]; ok {
			recipe.Author = *author
		}
	}
	if r.ingredients != nil {
		lines := make([]models.RecipeIngredient, len(recipe.Ingredients))
		copy(lines, recipe.Ingredients)
		for i := range lines {
			if ingredient, ok := r.ingredients.ingredients[lines[i].IngredientID]; ok {
				lines[i].Ingredient = ingredient
			}
		}
		recipe.Ingredients = lines
	}
	return recipe
}

func (r *fakeRecipeRepo) add(recipe models.Recipe) *models.Recipe {
	if recipe.ID == 0 {
		recipe.ID = r.nextID
	}
	if recipe.ID >= r.nextID {
		r.nextID = recipe.ID + 1
	}
	stored := recipe
	r.recipes[stored.ID] = &stored
	return &stored
}

func (r *fakeRecipeRepo) Create(_ context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	for _, existing := range r.recipes {
		if existing.Name == recipe.Name {
			return repository.ErrDuplicate
		}
	}
	recipe.ID = r.nextID
	r.nextID++
	recipe.Tags = tags
	recipe.Ingredients = lines
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipeRepo) Update(_ context.Context, recipe *models.Recipe, tags []models.Tag, lines []models.RecipeIngredient) error {
	if _, ok := r.recipes[recipe.ID]; !ok {
		return repository.ErrNotFound
	}
	recipe.Tags = tags
	for i := range lines {
		lines[i].RecipeID = recipe.ID
	}
	recipe.Ingredients = lines
	stored := *recipe
	r.recipes[recipe.ID] = &stored
	return nil
}

func (r *fakeRecipeRepo) GetByID(_ context.Context, id uint) (*models.Recipe, error) {
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := r.loaded(*recipe)
	return &copied, nil
}

func (r *fakeRecipeRepo) List(_ context.Context, filter repository.RecipeFilter) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for _, recipe := range r.recipes {
		if filter.AuthorID != 0 && recipe.AuthorID != filter.AuthorID {
			continue
		}
		recipes = append(recipes, r.loaded(*recipe))
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].CookingTime < recipes[j].CookingTime })
	return recipes, nil
}

func (r *fakeRecipeRepo) ListByAuthor(_ context.Context, authorID uint, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	for _, recipe := range r.recipes {
		if recipe.AuthorID == authorID {
			recipes = append(recipes, r.loaded(*recipe))
		}
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	if limit > 0 && len(recipes) > limit {
		recipes = recipes[:limit]
	}
	return recipes, nil
}

func (r *fakeRecipeRepo) CountByAuthor(_ context.Context, authorID uint) (int64, error) {
	var count int64
	for _, recipe := range r.recipes {
		if recipe.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (r *fakeRecipeRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.recipes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.recipes, id)
	return nil
}

func (r *fakeRecipeRepo) NameExists(_ context.Context, name string, excludeID uint) (bool, error) {
	for _, recipe := range r.recipes {
		if recipe.Name == name && recipe.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// fakePairSet backs the favorite, cart and subscription fakes: a set of
// (user, target) pairs with insertion order preserved.
type fakePairSet struct {
	pairs map[[2]uint]bool
	order [][2]uint
}

func newFakePairSet() *fakePairSet {
	return &fakePairSet{pairs: make(map[[2]uint]bool)}
}

func (s *fakePairSet) add(userID, targetID uint) error {
	key := [2]uint{userID, targetID}
	if s.pairs[key] {
		return repository.ErrDuplicate
	}
	s.pairs[key] = true
	s.order = append(s.order, key)
	return nil
}

func (s *fakePairSet) remove(userID, targetID uint) error {
	key := [2]uint{userID, targetID}
	if !s.pairs[key] {
		return repository.ErrNotFound
	}
	delete(s.pairs, key)
	for i, stored := range s.order {
		if stored == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *fakePairSet) exists(userID, targetID uint) bool {
	return s.pairs[[2]uint{userID, targetID}]
}

type fakeFavoriteRepo struct {
	set *fakePairSet
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{set: newFakePairSet()}
}

func (r *fakeFavoriteRepo) Add(_ context.Context, userID, recipeID uint) error {
	return r.set.add(userID, recipeID)
}

func (r *fakeFavoriteRepo) Remove(_ context.Context, userID, recipeID uint) error {
	return r.set.remove(userID, recipeID)
}

func (r *fakeFavoriteRepo) Exists(_ context.Context, userID, recipeID uint) (bool, error) {
	return r.set.exists(userID, recipeID), nil
}

// fakeCartRepo aggregates from the recipe fake the way the SQL query
// does: sum amounts over carted recipes, group by (name, unit), order
// by name.
type fakeCartRepo struct {
	set     *fakePairSet
	recipes *fakeRecipeRepo
}

func newFakeCartRepo(recipes *fakeRecipeRepo) *fakeCartRepo {
	return &fakeCartRepo{set: newFakePairSet(), recipes: recipes}
}

func (r *fakeCartRepo) Add(_ context.Context, userID, recipeID uint) error {
	return r.set.add(userID, recipeID)
}

func (r *fakeCartRepo) Remove(_ context.Context, userID, recipeID uint) error {
	return r.set.remove(userID, recipeID)
}

func (r *fakeCartRepo) Exists(_ context.Context, userID, recipeID uint) (bool, error) {
	return r.set.exists(userID, recipeID), nil
}

func (r *fakeCartRepo) Aggregate(_ context.Context, userID uint) ([]repository.IngredientTotal, error) {
	type key struct {
		name string
		unit string
	}
	sums := make(map[key]int)
	for pair := range r.set.pairs {
		if pair[0] != userID {
			continue
		}
		stored, ok := r.recipes.recipes[pair[1]]
		if !ok {
			continue
		}
		recipe := r.recipes.loaded(*stored)
		for _, line := range recipe.Ingredients {
			k := key{name: line.Ingredient.Name, unit: line.Ingredient.MeasurementUnit}
			sums[k] += line.Amount
		}
	}

	totals := make([]repository.IngredientTotal, 0, len(sums))
	for k, total := range sums {
		totals = append(totals, repository.IngredientTotal{
			Name:            k.name,
			MeasurementUnit: k.unit,
			Total:           total,
		})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Name < totals[j].Name })
	return totals, nil
}

type fakeSubscriptionRepo struct {
	set   *fakePairSet
	users *fakeUserRepo
}

func newFakeSubscriptionRepo(users *fakeUserRepo) *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{set: newFakePairSet(), users: users}
}

func (r *fakeSubscriptionRepo) Add(_ context.Context, userID, authorID uint) error {
	return r.set.add(userID, authorID)
}

func (r *fakeSubscriptionRepo) Remove(_ context.Context, userID, authorID uint) error {
	return r.set.remove(userID, authorID)
}

func (r *fakeSubscriptionRepo) Exists(_ context.Context, userID, authorID uint) (bool, error) {
	return r.set.exists(userID, authorID), nil
}

func (r *fakeSubscriptionRepo) ListAuthors(_ context.Context, userID uint) ([]models.User, error) {
	var authors []models.User
	for _, pair := range r.set.order {
		if pair[0] != userID {
			continue
		}
		if author, ok := r.users.users[pair[1]]; ok {
			authors = append(authors, *author)
		}
	}
	return authors, nil
}

// fakeImageStorage records saves so tests can assert on the stored name.
type fakeImageStorage struct {
	saved map[string][]byte
}

func newFakeImageStorage() *fakeImageStorage {
	return &fakeImageStorage{saved: make(map[string][]byte)}
}

func (s *fakeImageStorage) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	s.saved[name] = data
	return "/media/recipes/" + name, nil
}

func (s *fakeImageStorage) Delete(_ context.Context, name string) error {
	delete(s.saved, name)
	return nil
}
