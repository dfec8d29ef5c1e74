package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// UnknownKeyError is returned for keys that were never registered.
type UnknownKeyError struct {
	Key     string
	Closest string
}

func (e *UnknownKeyError) Error() string {
	return fmt.Sprintf("unknown key %s, did you mean %s?", e.Key, e.Closest)
}

// Lookup returns the field registered under key.
func Lookup(key string) (Field, error) {
	if field, ok := Default[key]; ok {
		return field, nil
	}

	return Field{}, &UnknownKeyError{Key: key, Closest: Closest(key)}
}

// Closest is the registered key with the smallest edit distance to key.
func Closest(key string) string {
	return lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		da, db := levenshtein.Distance(key, a), levenshtein.Distance(key, b)
		if da == db {
			return a < b
		}
		return da < db
	})
}

// Parse converts raw command line values into the type of the field's default.
func Parse(key string, raw []string) (any, error) {
	field, err := Lookup(key)
	if err != nil {
		return nil, err
	}

	if len(raw) == 0 {
		return nil, errors.New("value is required")
	}

	switch field.Value.(type) {
	case string:
		if len(field.Options) > 0 && !lo.Contains(field.Options, raw[0]) {
			return nil, fmt.Errorf("invalid value %q, expected one of: %s", raw[0], strings.Join(field.Options, ", "))
		}
		return raw[0], nil
	case int:
		n, err := strconv.Atoi(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid integer value: %s", raw[0])
		}
		if n < 0 {
			return nil, fmt.Errorf("%s can not be negative", key)
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(raw[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boolean value: %s", raw[0])
		}
		return b, nil
	case []string:
		// accept both repeated values and a single comma separated one
		var values []string
		for _, r := range raw {
			for _, v := range strings.Split(r, ",") {
				if v = strings.TrimSpace(v); v != "" {
					values = append(values, v)
				}
			}
		}
		return lo.Uniq(values), nil
	default:
		return nil, fmt.Errorf("%s can not be set from the command line", key)
	}
}

// Write persists the current values, creating the config file when missing.
func Write() error {
	err := viper.WriteConfig()
	if errors.As(err, &viper.ConfigFileNotFoundError{}) {
		return viper.SafeWriteConfig()
	}
	return err
}

// Restore restores the given keys to their defaults, or every key when none are given.
func Restore(keys ...string) error {
	if len(keys) == 0 {
		keys = lo.Keys(Default)
	}

	for _, key := range keys {
		field, err := Lookup(key)
		if err != nil {
			return err
		}
		viper.Set(key, field.Value)
	}

	return Write()
}
