package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CacheService remembers what a food/sport description contributed to the
// day's intake, so a later delete can subtract exactly the same amounts.
// Entries expire at midnight along with the day they describe.
type CacheService struct {
	redis *redis.Client
}

func NewCacheService(rdb *redis.Client) *CacheService {
	return &CacheService{redis: rdb}
}

func (s *CacheService) SaveFoodNutrients(ctx context.Context, userID uint, description string, nutrients map[uint]float64) error {
	data, err := json.Marshal(nutrients)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cacheKey(userID, description), data, untilMidnight()).Err()
}

func (s *CacheService) GetFoodNutrients(ctx context.Context, userID uint, description string) (map[uint]float64, error) {
	data, err := s.redis.Get(ctx, cacheKey(userID, description)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var nutrients map[uint]float64
	if err := json.Unmarshal(data, &nutrients); err != nil {
		return nil, err
	}
	return nutrients, nil
}

func (s *CacheService) RemoveFoodNutrients(ctx context.Context, userID uint, description string) error {
	return s.redis.Del(ctx, cacheKey(userID, description)).Err()
}

type SportUsefulData struct {
	Name           string  `json:"name"`
	CaloriesBurned float64 `json:"calories_burned"`
}

func (s *CacheService) SaveSportInfo(ctx context.Context, userID uint, description string, data SportUsefulData) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cacheKey(userID, description), payload, untilMidnight()).Err()
}

func (s *CacheService) GetSportInfo(ctx context.Context, userID uint, description string) (*SportUsefulData, error) {
	payload, err := s.redis.Get(ctx, cacheKey(userID, description)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var data SportUsefulData
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *CacheService) RemoveSportInfo(ctx context.Context, userID uint, description string) error {
	return s.redis.Del(ctx, cacheKey(userID, description)).Err()
}

func cacheKey(userID uint, description string) string {
	return fmt.Sprintf("%d_%s_%s", userID, description, time.Now().Format("20060102"))
}

func untilMidnight() time.Duration {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
	return time.Until(midnight)
}
