package core

// # Error Codes Reference
//
// This file maps engine errors to user-facing messages with codes for
// support reference. Errors carrying a kind with a single meaning map by
// kind; the rest map by message pattern.
//
// # Load Errors (LOAD001-LOAD099)
//
//	LOAD001 - Directory not found: The inventory directory does not exist
//	          Action: Check the path and try again
//	          Kind: not_found
//
//	LOAD002 - Load in progress: Another load is already running
//	          Action: Wait for the running load to finish
//	          Patterns: "another load is in progress"
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL002 - Invalid number: A quantity or price cell is not a number
//	         Patterns: "invalid number"
//
//	VAL004 - Missing column: Required column is missing from CSV
//	         Patterns: "missing required column"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large
//	          Patterns: "file too large"
//
//	FILE002 - Invalid CSV
//	          Patterns: "invalid csv"
//
//	FILE003 - Encoding error
//	          Patterns: "encoding error", "unknown encoding"
//
//	FILE005 - Empty file
//	          Patterns: "empty file"
//
// # Inventory Errors (INV001-INV099)
//
//	INV001 - Inventory empty: Nothing has been loaded yet
//	         Patterns: "inventory is empty"
//
//	INV002 - Empty search term
//	         Patterns: "must specify a search term"
//
// # Query Errors (QRY001-QRY099)
//
//	QRY001 - Invalid range bound
//	         Kind: input_format
//
// # Export Errors (EXP001-EXP099)
//
//	EXP001 - Export failed: The report could not be written
//	         Kind: export
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled      Patterns: "context canceled"
//	REQ002 - Request timed out      Patterns: "context deadline exceeded"
//
// # Default Error (ERR000)
//
// Fallback when no kind or pattern matches. Check the application logs for
// the original technical error.
//
// # Pattern Matching
//
// Patterns are matched case-insensitively using strings.Contains. The first
// matching pattern wins, so more specific patterns come first.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

// kindMessages maps kinds with one meaning straight to a message.
var kindMessages = map[ErrorKind]UserMessage{
	KindNotFound: {
		Message: "The inventory directory does not exist",
		Action:  "Check the path and try again",
		Code:    "LOAD001",
	},
	KindInputFormat: {
		Message: "Invalid range bound",
		Action:  "Use numbers for prices and whole numbers for quantities",
		Code:    "QRY001",
	},
	KindExport: {
		Message: "The report could not be written",
		Action:  "Check that the destination exists and is writable",
		Code:    "EXP001",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error patterns (case-insensitive) to user messages.
var errorPatterns = []errorPattern{
	// =========================================================================
	// Preconditions (INV001-INV002, LOAD002)
	// =========================================================================
	{
		pattern: "inventory is empty",
		msg: UserMessage{
			Message: "The inventory is empty",
			Action:  "Load a directory of CSV files first",
			Code:    "INV001",
		},
	},
	{
		pattern: "must specify a search term",
		msg: UserMessage{
			Message: "You must specify a search term",
			Action:  "Enter a product name, category, or keyword",
			Code:    "INV002",
		},
	},
	{
		pattern: "another load is in progress",
		msg: UserMessage{
			Message: "Another load is already running",
			Action:  "Wait for the running load to finish and try again",
			Code:    "LOAD002",
		},
	},

	// =========================================================================
	// Validation Errors (VAL002, VAL004)
	// =========================================================================
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "Required column is missing from CSV",
			Action:  "Check that nom du produit, catégorie, quantité and prix unitaire are present",
			Code:    "VAL004",
		},
	},
	{
		pattern: "invalid number",
		msg: UserMessage{
			Message: "Invalid number format detected",
			Action:  "Use a plain decimal number for quantities and prices",
			Code:    "VAL002",
		},
	},

	// =========================================================================
	// File Errors (FILE001-FILE005)
	// =========================================================================
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "File exceeds the maximum size limit",
			Action:  "Split the file into smaller chunks",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains characters outside the configured encoding",
			Action:  "Save the file as ISO-8859-1 or configure INVENTORY_ENCODING",
			Code:    "FILE003",
		},
	},
	{
		pattern: "unknown encoding",
		msg: UserMessage{
			Message: "The configured encoding is not supported",
			Action:  "Use an IANA name such as ISO-8859-1 or UTF-8",
			Code:    "FILE003",
		},
	},
	{
		pattern: "empty file",
		msg: UserMessage{
			Message: "The file is empty",
			Action:  "Add a header row and data rows",
			Code:    "FILE005",
		},
	},

	// =========================================================================
	// Request Errors (REQ001-REQ002)
	// =========================================================================
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller directory or try again later",
			Code:    "REQ002",
		},
	},
}

// defaultMessage is returned when no kind or pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts an error to a user-friendly message.
//
// Example:
//
//	msg := MapError(ErrEmptyInventory)
//	// msg.Code == "INV001"
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	if msg, ok := kindMessages[KindOf(err)]; ok {
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}

	return defaultMessage
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action"
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err maps to a specific message rather than
// the ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}
