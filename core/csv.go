package core

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/prodrec/prodrec/base/log"
)

// LoadRatings loads rating records from a CSV file with a header row naming
// the columns user_id, product_id, rating and timestamp (unix seconds).
// Rows with missing fields or unparsable numbers are skipped.
func LoadRatings(path string) ([]Rating, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, errors.Annotate(err, "read CSV header")
	}
	columns := make(map[string]int)
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range []string{"user_id", "product_id", "rating", "timestamp"} {
		if _, exist := columns[name]; !exist {
			return nil, errors.NotValidf("CSV column %q missing", name)
		}
	}
	ratings := make([]Rating, 0)
	skipped := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		userId := row[columns["user_id"]]
		itemId := row[columns["product_id"]]
		if userId == "" || itemId == "" {
			skipped++
			continue
		}
		score, err := strconv.ParseFloat(row[columns["rating"]], 64)
		if err != nil {
			skipped++
			continue
		}
		timestamp, err := strconv.ParseInt(row[columns["timestamp"]], 10, 64)
		if err != nil {
			skipped++
			continue
		}
		ratings = append(ratings, Rating{
			UserId:    userId,
			ItemId:    itemId,
			Score:     score,
			Timestamp: time.Unix(timestamp, 0).UTC(),
		})
	}
	if skipped > 0 {
		log.Logger().Warn("skipped invalid CSV rows",
			zap.String("path", path), zap.Int("skipped", skipped))
	}
	return ratings, nil
}

// Clean repairs invalid records in place and returns the slice. Scores
// outside [0, 5] are imputed with the hybrid baseline
// global + (userMean - global) + (itemMean - global), clamped into [0, 5].
// Non-positive timestamps are replaced with the smallest positive timestamp
// in the dataset.
func Clean(ratings []Rating) []Rating {
	if len(ratings) == 0 {
		return ratings
	}
	var (
		globalSum  float64
		count      int
		userSums   = make(map[string]float64)
		userCounts = make(map[string]int)
		itemSums   = make(map[string]float64)
		itemCounts = make(map[string]int)
		minTime    time.Time
	)
	for _, rating := range ratings {
		if rating.Timestamp.Unix() > 0 && (minTime.IsZero() || rating.Timestamp.Before(minTime)) {
			minTime = rating.Timestamp
		}
		if rating.Score >= 0 && rating.Score <= 5 {
			globalSum += rating.Score
			count++
			userSums[rating.UserId] += rating.Score
			userCounts[rating.UserId]++
			itemSums[rating.ItemId] += rating.Score
			itemCounts[rating.ItemId]++
		}
	}
	globalMean := 2.5
	if count > 0 {
		globalMean = globalSum / float64(count)
	}
	if minTime.IsZero() {
		minTime = time.Unix(1, 0).UTC()
	}
	imputed := 0
	for i := range ratings {
		if ratings[i].Timestamp.Unix() <= 0 {
			ratings[i].Timestamp = minTime
		}
		if ratings[i].Score < 0 || ratings[i].Score > 5 {
			userMean := globalMean
			if userCounts[ratings[i].UserId] > 0 {
				userMean = userSums[ratings[i].UserId] / float64(userCounts[ratings[i].UserId])
			}
			itemMean := globalMean
			if itemCounts[ratings[i].ItemId] > 0 {
				itemMean = itemSums[ratings[i].ItemId] / float64(itemCounts[ratings[i].ItemId])
			}
			ratings[i].Score = ClampRating(globalMean + (userMean - globalMean) + (itemMean - globalMean))
			imputed++
		}
	}
	if imputed > 0 {
		log.Logger().Info("imputed invalid ratings", zap.Int("imputed", imputed))
	}
	return ratings
}

// LoadAndClean loads and repairs rating records from a CSV file.
func LoadAndClean(path string) ([]Rating, error) {
	ratings, err := LoadRatings(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return Clean(ratings), nil
}
