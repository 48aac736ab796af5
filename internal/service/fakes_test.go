package service

import (
	"context"
	"time"

	"nutrifit/fitness-platform/internal/domain"
	"nutrifit/fitness-platform/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes. They implement the repository interfaces the
// mongo layer implements in production, so the services under test run the
// exact code paths the server runs.

type fakeTxRunner struct{}

func (fakeTxRunner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// --- users ---

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return primitive.NilObjectID, repository.ErrUpdateFailed
		}
	}
	user.ID = primitive.NewObjectID()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	if user.Status == "" {
		user.Status = domain.StatusAwaitingAssignment
	}
	cp := *user
	r.users[user.ID] = &cp
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) UpdateStatus(_ context.Context, id primitive.ObjectID, status domain.Status) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Status = status
	return nil
}

func (r *fakeUserRepo) SetAvatarKey(_ context.Context, id primitive.ObjectID, key string) error {
	u, ok := r.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.AvatarKey = key
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// --- training plans ---

type fakeTrainingPlanRepo struct {
	plans map[primitive.ObjectID]*domain.TrainingPlan
}

func newFakeTrainingPlanRepo() *fakeTrainingPlanRepo {
	return &fakeTrainingPlanRepo{plans: make(map[primitive.ObjectID]*domain.TrainingPlan)}
}

func (r *fakeTrainingPlanRepo) Create(_ context.Context, plan *domain.TrainingPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	for i := range plan.Workouts {
		if plan.Workouts[i].ID.IsZero() {
			plan.Workouts[i].ID = primitive.NewObjectID()
		}
	}
	cp := *plan
	r.plans[plan.ID] = &cp
	return plan.ID, nil
}

func (r *fakeTrainingPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.TrainingPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeTrainingPlanRepo) List(_ context.Context) ([]domain.TrainingPlan, error) {
	out := make([]domain.TrainingPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeTrainingPlanRepo) Update(_ context.Context, plan *domain.TrainingPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakeTrainingPlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

// --- meal plans ---

type fakeMealPlanRepo struct {
	plans map[primitive.ObjectID]*domain.MealPlan
}

func newFakeMealPlanRepo() *fakeMealPlanRepo {
	return &fakeMealPlanRepo{plans: make(map[primitive.ObjectID]*domain.MealPlan)}
}

func (r *fakeMealPlanRepo) Create(_ context.Context, plan *domain.MealPlan) (primitive.ObjectID, error) {
	plan.ID = primitive.NewObjectID()
	cp := *plan
	r.plans[plan.ID] = &cp
	return plan.ID, nil
}

func (r *fakeMealPlanRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.MealPlan, error) {
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeMealPlanRepo) List(_ context.Context) ([]domain.MealPlan, error) {
	out := make([]domain.MealPlan, 0, len(r.plans))
	for _, p := range r.plans {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeMealPlanRepo) Update(_ context.Context, plan *domain.MealPlan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *plan
	r.plans[plan.ID] = &cp
	return nil
}

func (r *fakeMealPlanRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.plans[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

// --- user workouts ---

type fakeUserWorkoutRepo struct {
	byUser map[primitive.ObjectID]*domain.UserWorkout
}

func newFakeUserWorkoutRepo() *fakeUserWorkoutRepo {
	return &fakeUserWorkoutRepo{byUser: make(map[primitive.ObjectID]*domain.UserWorkout)}
}

func (r *fakeUserWorkoutRepo) Create(_ context.Context, uw *domain.UserWorkout) (primitive.ObjectID, error) {
	if _, ok := r.byUser[uw.UserID]; ok {
		return primitive.NilObjectID, repository.ErrUpdateFailed
	}
	uw.ID = primitive.NewObjectID()
	if uw.DateStarted.IsZero() {
		uw.DateStarted = time.Now().UTC()
	}
	cp := *uw
	r.byUser[uw.UserID] = &cp
	return uw.ID, nil
}

func (r *fakeUserWorkoutRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserWorkout, error) {
	uw, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *uw
	return &cp, nil
}

func (r *fakeUserWorkoutRepo) SetProgress(_ context.Context, id primitive.ObjectID, progress int) error {
	for _, uw := range r.byUser {
		if uw.ID == id {
			uw.Progress = progress
			return nil
		}
	}
	return repository.ErrNotFound
}

func (r *fakeUserWorkoutRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	if _, ok := r.byUser[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byUser, userID)
	return nil
}

// --- weekly workouts ---

type fakeWeeklyWorkoutRepo struct {
	rows []domain.WeeklyWorkout
}

func newFakeWeeklyWorkoutRepo() *fakeWeeklyWorkoutRepo {
	return &fakeWeeklyWorkoutRepo{}
}

func (r *fakeWeeklyWorkoutRepo) CreateMany(_ context.Context, rows []domain.WeeklyWorkout) error {
	for i := range rows {
		rows[i].ID = primitive.NewObjectID()
		r.rows = append(r.rows, rows[i])
	}
	return nil
}

func (r *fakeWeeklyWorkoutRepo) GetByUserWorkoutID(_ context.Context, userWorkoutID primitive.ObjectID) ([]domain.WeeklyWorkout, error) {
	var out []domain.WeeklyWorkout
	for _, row := range r.rows {
		if row.UserWorkoutID == userWorkoutID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeWeeklyWorkoutRepo) Complete(_ context.Context, userWorkoutID, workoutID primitive.ObjectID, progress int) (*domain.WeeklyWorkout, error) {
	for i := range r.rows {
		row := &r.rows[i]
		if row.UserWorkoutID == userWorkoutID && row.WorkoutID == workoutID && !row.Completed {
			row.Completed = true
			row.Progress = progress
			cp := *row
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeWeeklyWorkoutRepo) ResetAll(_ context.Context, userWorkoutID primitive.ObjectID) error {
	for i := range r.rows {
		if r.rows[i].UserWorkoutID == userWorkoutID {
			r.rows[i].Completed = false
			r.rows[i].Progress = 0
		}
	}
	return nil
}

func (r *fakeWeeklyWorkoutRepo) DeleteByUserWorkoutID(_ context.Context, userWorkoutID primitive.ObjectID) error {
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.UserWorkoutID != userWorkoutID {
			kept = append(kept, row)
		}
	}
	r.rows = kept
	return nil
}

// --- nutrition links ---

type fakeNutritionRepo struct {
	byUser map[primitive.ObjectID]*domain.UserNutritionPlan
}

func newFakeNutritionRepo() *fakeNutritionRepo {
	return &fakeNutritionRepo{byUser: make(map[primitive.ObjectID]*domain.UserNutritionPlan)}
}

func (r *fakeNutritionRepo) Create(_ context.Context, unp *domain.UserNutritionPlan) (primitive.ObjectID, error) {
	if _, ok := r.byUser[unp.UserID]; ok {
		return primitive.NilObjectID, repository.ErrUpdateFailed
	}
	unp.ID = primitive.NewObjectID()
	if unp.AssignedAt.IsZero() {
		unp.AssignedAt = time.Now().UTC()
	}
	cp := *unp
	r.byUser[unp.UserID] = &cp
	return unp.ID, nil
}

func (r *fakeNutritionRepo) GetByUserID(_ context.Context, userID primitive.ObjectID) (*domain.UserNutritionPlan, error) {
	unp, ok := r.byUser[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *unp
	return &cp, nil
}

func (r *fakeNutritionRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	if _, ok := r.byUser[userID]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byUser, userID)
	return nil
}

// --- weight records ---

type fakeWeightRepo struct {
	recs []domain.WeightRecord
	seq  []int
	next int
}

func newFakeWeightRepo() *fakeWeightRepo {
	return &fakeWeightRepo{}
}

func (r *fakeWeightRepo) Create(_ context.Context, rec *domain.WeightRecord) (primitive.ObjectID, error) {
	rec.ID = primitive.NewObjectID()
	if rec.Date.IsZero() {
		rec.Date = time.Now().UTC()
	}
	r.recs = append(r.recs, *rec)
	r.seq = append(r.seq, r.next)
	r.next++
	return rec.ID, nil
}

func (r *fakeWeightRepo) Latest(_ context.Context, userID primitive.ObjectID) (*domain.WeightRecord, error) {
	best := -1
	for i, rec := range r.recs {
		if rec.UserID != userID {
			continue
		}
		if best == -1 {
			best = i
			continue
		}
		// Order by (date desc, insertion order desc), mirroring the mongo sort
		// on (date, _id).
		if rec.Date.After(r.recs[best].Date) ||
			(rec.Date.Equal(r.recs[best].Date) && r.seq[i] > r.seq[best]) {
			best = i
		}
	}
	if best == -1 {
		return nil, repository.ErrNotFound
	}
	cp := r.recs[best]
	return &cp, nil
}

func (r *fakeWeightRepo) History(_ context.Context, userID primitive.ObjectID) ([]domain.WeightRecord, error) {
	var out []domain.WeightRecord
	for _, rec := range r.recs {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeWeightRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	kept := r.recs[:0]
	keptSeq := r.seq[:0]
	for i, rec := range r.recs {
		if rec.UserID != userID {
			kept = append(kept, rec)
			keptSeq = append(keptSeq, r.seq[i])
		}
	}
	r.recs = kept
	r.seq = keptSeq
	return nil
}

// --- progress tracking ---

type dayKey struct {
	user primitive.ObjectID
	day  time.Time
}

type fakeProgressRepo struct {
	counts map[dayKey]int
}

func newFakeProgressRepo() *fakeProgressRepo {
	return &fakeProgressRepo{counts: make(map[dayKey]int)}
}

func (r *fakeProgressRepo) IncrementDay(_ context.Context, userID primitive.ObjectID, day time.Time) (int, error) {
	k := dayKey{user: userID, day: domain.Day(day)}
	r.counts[k]++
	return r.counts[k], nil
}

func (r *fakeProgressRepo) GetByUserAndDay(_ context.Context, userID primitive.ObjectID, day time.Time) (*domain.ProgressTracking, error) {
	k := dayKey{user: userID, day: domain.Day(day)}
	n, ok := r.counts[k]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &domain.ProgressTracking{UserID: userID, Date: k.day, CompletedWorkouts: n}, nil
}

func (r *fakeProgressRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	for k := range r.counts {
		if k.user == userID {
			delete(r.counts, k)
		}
	}
	return nil
}

// --- exercise logs ---

type fakeExerciseLogRepo struct {
	entries []domain.ExerciseLog
}

func newFakeExerciseLogRepo() *fakeExerciseLogRepo {
	return &fakeExerciseLogRepo{}
}

func (r *fakeExerciseLogRepo) Create(_ context.Context, entry *domain.ExerciseLog) (primitive.ObjectID, error) {
	entry.ID = primitive.NewObjectID()
	r.entries = append(r.entries, *entry)
	return entry.ID, nil
}

func (r *fakeExerciseLogRepo) CountByExercise(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, e := range r.entries {
		counts[e.ExerciseName]++
	}
	return counts, nil
}

func (r *fakeExerciseLogRepo) DeleteByUserID(_ context.Context, userID primitive.ObjectID) error {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	r.entries = kept
	return nil
}

// --- file storage ---

type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(_ context.Context, objectKey, _ string, _ time.Duration) (string, error) {
	return "https://storage.test/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	return "https://storage.test/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(_ context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func newID() primitive.ObjectID {
	return primitive.NewObjectID()
}

// --- test harness ---

// env bundles the fakes and all services wired the way main.go wires them.
type env struct {
	users       *fakeUserRepo
	plans       *fakeTrainingPlanRepo
	meals       *fakeMealPlanRepo
	userWorkout *fakeUserWorkoutRepo
	weekly      *fakeWeeklyWorkoutRepo
	nutrition   *fakeNutritionRepo
	weights     *fakeWeightRepo
	progress    *fakeProgressRepo
	logs        *fakeExerciseLogRepo
	storage     *fakeFileStorage

	auth        AuthService
	usersSvc    UserService
	plansSvc    PlanService
	assignments AssignmentService
	workouts    WorkoutService
	progressSvc ProgressService
	analytics   AnalyticsService
}

func newEnv() *env {
	e := &env{
		users:       newFakeUserRepo(),
		plans:       newFakeTrainingPlanRepo(),
		meals:       newFakeMealPlanRepo(),
		userWorkout: newFakeUserWorkoutRepo(),
		weekly:      newFakeWeeklyWorkoutRepo(),
		nutrition:   newFakeNutritionRepo(),
		weights:     newFakeWeightRepo(),
		progress:    newFakeProgressRepo(),
		logs:        newFakeExerciseLogRepo(),
		storage:     &fakeFileStorage{},
	}
	tx := fakeTxRunner{}
	e.auth = NewAuthService(e.users, "test-secret", time.Hour)
	e.usersSvc = NewUserService(e.users, e.userWorkout, e.weekly, e.nutrition,
		e.weights, e.progress, e.logs, e.storage, tx)
	e.plansSvc = NewPlanService(e.users, e.plans, e.meals, e.storage)
	e.assignments = NewAssignmentService(e.users, e.plans, e.meals,
		e.userWorkout, e.weekly, e.nutrition, tx)
	e.workouts = NewWorkoutService(e.userWorkout, e.weekly, tx)
	e.progressSvc = NewProgressService(e.users, e.userWorkout, e.plans,
		e.weights, e.progress, e.logs)
	e.analytics = NewAnalyticsService(e.users, e.logs)
	return e
}

// addUser seeds a user with the given role and returns its id.
func (e *env) addUser(role domain.Role) primitive.ObjectID {
	id := primitive.NewObjectID()
	e.users.users[id] = &domain.User{
		ID:        id,
		Name:      string(role) + " user",
		Email:     id.Hex() + "@example.com",
		Role:      role,
		Status:    domain.StatusAwaitingAssignment,
		CreatedAt: time.Now().UTC(),
	}
	return id
}

// addTrainingPlan seeds a plan with one workout per name.
func (e *env) addTrainingPlan(names ...string) *domain.TrainingPlan {
	plan := &domain.TrainingPlan{Name: "Plan " + names[0]}
	for i, n := range names {
		plan.Workouts = append(plan.Workouts, domain.Workout{
			ID:       primitive.NewObjectID(),
			Name:     n,
			Sequence: i + 1,
		})
	}
	plan.ID = primitive.NewObjectID()
	e.plans.plans[plan.ID] = plan
	return plan
}

// addMealPlan seeds a minimal meal plan.
func (e *env) addMealPlan() *domain.MealPlan {
	plan := &domain.MealPlan{
		ID:       primitive.NewObjectID(),
		Name:     "Cut 2200",
		Calories: 2200,
	}
	e.meals.plans[plan.ID] = plan
	return plan
}
