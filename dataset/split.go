package dataset

import (
	"log/slog"
	"math"
	"math/rand"
	"sort"

	"github.com/insurekit/claimfreq/pkg/errors"
	"github.com/insurekit/claimfreq/pkg/log"
)

// Split partitions the dataset into a training set of floor(N*frac) rows
// drawn uniformly without replacement and a validation set of the remaining
// rows. The generator is seeded locally, never from ambient process state, so
// an identical (dataset, frac, seed) triple always yields an identical split.
// Rows keep their original relative order inside each subset.
func (d *Dataset) Split(frac float64, seed int64) (train, validation *Dataset, err error) {
	if frac <= 0 || frac >= 1 {
		return nil, nil, errors.NewValueError("Dataset.Split", "training fraction must be in (0,1)")
	}
	n := len(d.records)
	if n == 0 {
		return nil, nil, errors.Wrap(errors.ErrEmptyData, "Dataset.Split")
	}

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(n)
	// floor of the float product; n*frac itself is subject to the usual
	// binary-representation error of frac.
	nTrain := int(math.Floor(float64(n) * frac))

	trainIdx := append([]int(nil), perm[:nTrain]...)
	validIdx := append([]int(nil), perm[nTrain:]...)
	sort.Ints(trainIdx)
	sort.Ints(validIdx)

	log.ForComponent("dataset").Debug("split dataset",
		slog.Int(log.RowsKey, n),
		slog.Int(log.TrainRowsKey, len(trainIdx)),
		slog.Int(log.ValidationRowsKey, len(validIdx)),
		slog.Int64(log.SeedKey, seed),
	)
	return d.subset(trainIdx), d.subset(validIdx), nil
}
