// Package schema has models, layouts and constants for all parts of activity.
package schema
