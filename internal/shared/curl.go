// Utilities for parsing cURL commands.
//
// RapidAPI's request console offers a "copy as cURL" snippet; `boxtube setup
// import-curl` uses this parser to pull the key out of one.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// CurlHeaders represents parsed headers from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
}

var curlHeaderRegex = regexp.MustCompile(`-H\s+'([^']+)'|-H\s+"([^"]+)"`)

// ParseCurlFile reads a .sh file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	curlCmd := string(data)
	curlCmd = strings.ReplaceAll(curlCmd, "\\\n", " ")
	curlCmd = strings.ReplaceAll(curlCmd, "\\", "")

	headers := make(map[string]string)

	for _, match := range curlHeaderRegex.FindAllStringSubmatch(curlCmd, -1) {
		headerLine := match[1]
		if headerLine == "" {
			headerLine = match[2]
		}

		key, value, ok := strings.Cut(headerLine, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	if len(headers) == 0 {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return &CurlHeaders{Headers: headers}, nil
}

// APIKey returns the RapidAPI key header from the parsed command, if present.
func (c *CurlHeaders) APIKey() (string, bool) {
	for key, value := range c.Headers {
		if strings.EqualFold(key, "X-RapidAPI-Key") || strings.EqualFold(key, "x-rapidapi-key") {
			return value, value != ""
		}
	}
	return "", false
}

// Host returns the RapidAPI host header from the parsed command, if present.
func (c *CurlHeaders) Host() (string, bool) {
	for key, value := range c.Headers {
		if strings.EqualFold(key, "X-RapidAPI-Host") {
			return value, value != ""
		}
	}
	return "", false
}
