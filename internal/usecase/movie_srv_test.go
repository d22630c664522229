package usecase

import (
	"context"
	"errors"
	"testing"

	"movie-reviews/internal/dto/request"
	"movie-reviews/internal/omdb"
)

func TestCreateMovieFromCatalog(t *testing.T) {
	repo := testRepo()
	year := 1999
	lookup := &fakeLookup{movies: map[string]*omdb.Movie{
		"the matrix": {
			Title:    "The Matrix",
			Year:     &year,
			ImdbID:   strPtr("tt0133093"),
			Genre:    strPtr("Action, Sci-Fi"),
			Director: strPtr("Lana Wachowski, Lilly Wachowski"),
		},
	}}
	svc := NewMovieService(repo, lookup, testConfig(), testLogger())

	resp, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "the matrix"})
	if err != nil {
		t.Fatalf("CreateMovie returned error: %v", err)
	}

	if resp.Title != "The Matrix" {
		t.Errorf("Title = %q, want canonical %q", resp.Title, "The Matrix")
	}
	if resp.ReleaseYear == nil || *resp.ReleaseYear != 1999 {
		t.Errorf("ReleaseYear = %v, want 1999", resp.ReleaseYear)
	}
	if resp.ImdbID == nil || *resp.ImdbID != "tt0133093" {
		t.Errorf("ImdbID = %v, want tt0133093", resp.ImdbID)
	}
}

func TestCreateMovieDuplicateTitle(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	seedMovie(t, repo, "The Matrix")

	_, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "the matrix"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}
}

func TestCreateMovieCanonicalDuplicate(t *testing.T) {
	repo := testRepo()
	lookup := &fakeLookup{movies: map[string]*omdb.Movie{
		"matrix": {Title: "The Matrix", ImdbID: strPtr("tt0133093")},
	}}
	svc := NewMovieService(repo, lookup, testConfig(), testLogger())

	seedMovie(t, repo, "The Matrix")

	// "matrix" slips past the direct title check but the catalog
	// resolves it to a stored movie.
	_, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "matrix"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict", err)
	}

	count, _ := repo.Movie.CountAll(context.Background(), nil)
	if count != 1 {
		t.Errorf("movie count = %d, want 1", count)
	}
}

func TestCreateMovieNotInCatalog(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	_, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "No Such Movie"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestCreateMovieCatalogDown(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{err: omdb.ErrUnavailable}, testConfig(), testLogger())

	_, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "The Matrix"})
	if !errors.Is(err, ErrUpstreamUnavailable) {
		t.Fatalf("error = %v, want ErrUpstreamUnavailable", err)
	}
}

func TestDeleteMovieBlockedByReviews(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	user := seedUser(t, repo, "alice")
	movie := seedMovie(t, repo, "The Matrix")
	seedReview(t, repo, user.ID, movie.ID, 4)

	err := svc.DeleteMovie(context.Background(), movie.ID.String())
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("error = %v, want ErrConflict while reviews exist", err)
	}
}

func TestDeleteMovieWithoutReviews(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	movie := seedMovie(t, repo, "The Matrix")

	if err := svc.DeleteMovie(context.Background(), movie.ID.String()); err != nil {
		t.Fatalf("DeleteMovie returned error: %v", err)
	}

	_, err := svc.GetMovieByID(context.Background(), movie.ID.String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("after delete: error = %v, want ErrNotFound", err)
	}
}

func TestCreateMovieAgainAfterDelete(t *testing.T) {
	repo := testRepo()
	lookup := &fakeLookup{movies: map[string]*omdb.Movie{
		"the matrix": {Title: "The Matrix", ImdbID: strPtr("tt0133093")},
	}}
	svc := NewMovieService(repo, lookup, testConfig(), testLogger())

	first, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "The Matrix"})
	if err != nil {
		t.Fatalf("CreateMovie returned error: %v", err)
	}
	if err := svc.DeleteMovie(context.Background(), first.ID); err != nil {
		t.Fatalf("DeleteMovie returned error: %v", err)
	}

	// A deleted movie releases its title and imdb id.
	second, err := svc.CreateMovie(context.Background(), &request.CreateMovieRequest{Title: "The Matrix"})
	if err != nil {
		t.Fatalf("CreateMovie after delete returned error: %v", err)
	}
	if second.ID == first.ID {
		t.Error("recreated movie reused the deleted id")
	}
}

func TestGetMovieReviewStats(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	movie := seedMovie(t, repo, "The Matrix")
	a := seedUser(t, repo, "alice")
	b := seedUser(t, repo, "bob")
	seedReview(t, repo, a.ID, movie.ID, 4)
	seedReview(t, repo, b.ID, movie.ID, 2)

	stats, err := svc.GetMovieReviewStats(context.Background(), movie.ID.String())
	if err != nil {
		t.Fatalf("GetMovieReviewStats returned error: %v", err)
	}

	if stats.ReviewCount != 2 {
		t.Errorf("ReviewCount = %d, want 2", stats.ReviewCount)
	}
	if stats.AverageRating != 3 {
		t.Errorf("AverageRating = %v, want 3", stats.AverageRating)
	}
}

func TestGetMovieReviewStatsInvalidID(t *testing.T) {
	repo := testRepo()
	svc := NewMovieService(repo, &fakeLookup{}, testConfig(), testLogger())

	_, err := svc.GetMovieReviewStats(context.Background(), "not-a-uuid")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("error = %v, want ErrValidation", err)
	}
}
