// Package converter provides conversion from journal sales to Beancount format.
package converter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Default accounts used when no mapping file is present.
const (
	DefaultCashAccount   = "Assets:Current:Cash"
	DefaultIncomeAccount = "Income:Sales:Other"
)

// CategoryMapping maps a sale category to an income account.
type CategoryMapping struct {
	Category string `yaml:"category"`
	Account  string `yaml:"account"`
}

// AccountMappingConfig represents the complete account mapping configuration.
type AccountMappingConfig struct {
	CashAccount   string            `yaml:"cash_account"`
	DefaultIncome string            `yaml:"default_income"`
	Categories    []CategoryMapping `yaml:"categories"`
}

// Mapper maps sale categories to Beancount income accounts.
type Mapper struct {
	config         AccountMappingConfig
	categoryToBean map[string]string
}

// NewMapper creates a new Mapper from a YAML configuration file.
// A missing file yields the default mapping.
func NewMapper(configPath string) (*Mapper, error) {
	if configPath == "" {
		return DefaultMapper(), nil
	}

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultMapper(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseMapper(data)
}

// ParseMapper creates a Mapper from YAML content.
func ParseMapper(data []byte) (*Mapper, error) {
	var config AccountMappingConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return newMapper(config), nil
}

// DefaultMapper returns a Mapper that sends every category to DefaultIncomeAccount.
func DefaultMapper() *Mapper {
	return newMapper(AccountMappingConfig{})
}

func newMapper(config AccountMappingConfig) *Mapper {
	if config.CashAccount == "" {
		config.CashAccount = DefaultCashAccount
	}
	if config.DefaultIncome == "" {
		config.DefaultIncome = DefaultIncomeAccount
	}

	m := &Mapper{
		config:         config,
		categoryToBean: make(map[string]string, len(config.Categories)),
	}
	for _, mapping := range config.Categories {
		m.categoryToBean[mapping.Category] = mapping.Account
	}
	return m
}

// GetIncomeAccount returns the income account for a category,
// falling back to the default income account.
func (m *Mapper) GetIncomeAccount(category string) string {
	if account := m.categoryToBean[category]; account != "" {
		return account
	}
	return m.config.DefaultIncome
}

// GetCashAccount returns the account receiving sale proceeds.
func (m *Mapper) GetCashAccount() string {
	return m.config.CashAccount
}

// HasMapping checks if a mapping exists for a category.
func (m *Mapper) HasMapping(category string) bool {
	_, ok := m.categoryToBean[category]
	return ok
}
