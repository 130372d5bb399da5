package models

import "time"

// WeatherRecord is one day of forecast data for a location. Temperatures
// are Fahrenheit. Condition is the provider's free-text condition string
// (e.g. "Rain, Partially cloudy").
type WeatherRecord struct {
	Date              time.Time `json:"date"`
	Location          string    `json:"location"`
	TempMax           float64   `json:"temp_max"`
	TempMin           float64   `json:"temp_min"`
	FeelsMax          float64   `json:"feels_max"`
	FeelsMin          float64   `json:"feels_min"`
	WindSpeed         float64   `json:"wind_speed"`
	Humidity          float64   `json:"humidity"`
	Precipitation     float64   `json:"precipitation"`
	PrecipProbability float64   `json:"precipitation_probability"`
	Condition         string    `json:"special_condition"`
}
