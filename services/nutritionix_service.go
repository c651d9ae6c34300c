package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/AnaLarisa/nutriWave-api/utils"
)

// NutritionixService resolves natural-language food and exercise
// descriptions through the Nutritionix track API.
type NutritionixService struct {
	appID  string
	appKey string
	client *http.Client
}

func NewNutritionixService() *NutritionixService {
	return &NutritionixService{
		appID:  os.Getenv("NUTRITIONIX_APP_ID"),
		appKey: os.Getenv("NUTRITIONIX_APP_KEY"),
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type nutritionixFoodResponse struct {
	Foods []struct {
		FoodName      string `json:"food_name"`
		FullNutrients []struct {
			AttrID int     `json:"attr_id"`
			Value  float64 `json:"value"`
		} `json:"full_nutrients"`
	} `json:"foods"`
}

// GetFoodNutrients returns the summed nutrient amounts for a description
// like "two eggs and a slice of toast", keyed by catalog nutrient id.
// Attributes the catalog does not track are dropped.
func (s *NutritionixService) GetFoodNutrients(description string) (map[uint]float64, error) {
	body, err := s.post("https://trackapi.nutritionix.com/v2/natural/nutrients", description)
	if err != nil {
		return nil, err
	}

	var fr nutritionixFoodResponse
	if err := json.Unmarshal(body, &fr); err != nil {
		return nil, fmt.Errorf("failed to parse Nutritionix nutrients JSON: %w", err)
	}
	if len(fr.Foods) == 0 {
		return nil, fmt.Errorf("no food information found for %q", description)
	}

	totals := make(map[uint]float64)
	for _, food := range fr.Foods {
		for _, nutrient := range food.FullNutrients {
			if id, ok := utils.MapNutritionixAttrID(nutrient.AttrID); ok && nutrient.Value > 0 {
				totals[id] += nutrient.Value
			}
		}
	}
	return totals, nil
}

type nutritionixExerciseResponse struct {
	Exercises []struct {
		Name     string  `json:"name"`
		Calories float64 `json:"nf_calories"`
	} `json:"exercises"`
}

// GetExerciseInfo returns the exercises recognized in a description like
// "ran 5km" with their estimated calorie burn.
func (s *NutritionixService) GetExerciseInfo(description string) ([]SportUsefulData, error) {
	body, err := s.post("https://trackapi.nutritionix.com/v2/natural/exercise", description)
	if err != nil {
		return nil, err
	}

	var er nutritionixExerciseResponse
	if err := json.Unmarshal(body, &er); err != nil {
		return nil, fmt.Errorf("failed to parse Nutritionix exercise JSON: %w", err)
	}

	data := make([]SportUsefulData, 0, len(er.Exercises))
	for _, e := range er.Exercises {
		data = append(data, SportUsefulData{Name: e.Name, CaloriesBurned: e.Calories})
	}
	return data, nil
}

func (s *NutritionixService) post(url, query string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create Nutritionix request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-app-id", s.appID)
	req.Header.Set("x-app-key", s.appKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call Nutritionix API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read Nutritionix response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nutritionix API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
