package recommend

// defaultInterest is assumed for genres the student never rated. Neutral
// positive, so an unrated genre cannot tank an otherwise good match.
const defaultInterest = 3

// popularityCeiling normalizes the popularity*interest product: popularity
// tops out at 5.0 and interest at 4, so 20 maps the product into [0,1].
const popularityCeiling = 20.0

// History summarizes what the student has already read, for the richer
// scoring variant. Zero-value History leaves the base score untouched.
type History struct {
	ReviewedBooks map[string]bool // book id -> already reviewed
	ReadAuthors   map[string]bool // author id -> appears in review history
}

// newAuthorBonus rewards books by authors the student has not read yet.
const newAuthorBonus = 0.05

// reviewedDamping halves the score of books the student already reviewed.
const reviewedDamping = 0.5

// MatchScore combines a student's genre interest with a book's peer
// popularity into a 0-1 ranking score. For each genre on the book the
// student's 1-4 interest is looked up (unrated genres count as 3); the score
// is popularity times the mean interest, normalized by the maximum product.
//
// The score is deterministic, side-effect-free, and monotonically
// non-decreasing in both popularity and interest alignment.
func MatchScore(interests GenreInterests, b Book) float64 {
	if len(b.Genres) == 0 {
		return b.AmazonPopularity * defaultInterest / popularityCeiling
	}
	sum := 0
	for _, g := range b.Genres {
		level, ok := interests[g]
		if !ok || level < 1 || level > 4 {
			level = defaultInterest
		}
		sum += level
	}
	interestFactor := float64(sum) / float64(len(b.Genres))
	return b.AmazonPopularity * interestFactor / popularityCeiling
}

// MatchScoreWithHistory layers review-history terms on top of MatchScore:
// books the student already reviewed are damped, and books introducing an
// unread author get a small diversity bonus. With an empty History it
// reduces exactly to MatchScore.
func MatchScoreWithHistory(interests GenreInterests, b Book, h History) float64 {
	score := MatchScore(interests, b)

	if h.ReviewedBooks[b.ID] {
		score *= reviewedDamping
	}

	if len(b.Authors) > 0 && len(h.ReadAuthors) > 0 {
		unread := true
		for _, a := range b.Authors {
			if h.ReadAuthors[a] {
				unread = false
				break
			}
		}
		if unread {
			score += newAuthorBonus
		}
	}

	return score
}
