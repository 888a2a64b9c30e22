package emotion

// Bucket groups labels into the coarse classes used by the fallback replies.
type Bucket string

const (
	BucketNeutral  Bucket = "neutral"
	BucketDistress Bucket = "distress"
	BucketPositive Bucket = "positive"
)

// BucketOf maps a label to its reply bucket.
func BucketOf(label Label) Bucket {
	switch label {
	case Sad, Angry, Anxious, Confused:
		return BucketDistress
	case Happy, Excited:
		return BucketPositive
	default:
		return BucketNeutral
	}
}
