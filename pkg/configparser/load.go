package configparser

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var ErrNoFilePath = errors.New("no file path provided")

// LoadAndParseYaml loads a .env file when present, reads the YAML file into
// the environment, then parses environment variables into dst via its
// env/default struct tags.
func LoadAndParseYaml(filepath string, dst any) error {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	if filepath != "" {
		if err := LoadYamlFile(filepath); err != nil {
			return err
		}
	}

	return ParseEnv(dst)
}

// LoadYamlFile reads a YAML file and loads variables into the environment.
// Nested sections become prefixes: database.host -> DATABASE_HOST.
// Values already present in the environment win over file values.
func LoadYamlFile(filepath string) error {
	if filepath == "" {
		return ErrNoFilePath
	}

	file, err := os.Open(filepath)
	if err != nil {
		return fmt.Errorf("could not open YAML file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	prefixStack := []string{}
	previousIndent := 0

	for scanner.Scan() {
		line := scanner.Text()

		// Skip empty lines and comments
		trimmedLine := strings.TrimSpace(line)
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}

		// Calculate indentation (count leading spaces)
		indent := 0
		for _, ch := range line {
			if ch != ' ' {
				break
			}
			indent++
		}

		// Update prefix stack based on indentation changes
		if indent < previousIndent {
			levelsToPop := (previousIndent - indent) / 2
			for i := 0; i < levelsToPop && len(prefixStack) > 0; i++ {
				prefixStack = prefixStack[:len(prefixStack)-1]
			}
		}
		previousIndent = indent

		content := strings.TrimSpace(line)

		// Section header (ends with colon, no inline value)
		if strings.HasSuffix(content, ":") && !strings.Contains(content, ": ") {
			sectionName := strings.TrimSuffix(content, ":")
			prefixStack = append(prefixStack, sectionName)
			continue
		}

		// Parse key-value pair
		parts := strings.SplitN(content, ":", 2)
		if len(parts) != 2 {
			continue // skip malformed lines
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if value == "" {
			continue
		}

		value = strings.Trim(value, `"'`)

		// Environment variable substitution: ${VAR:-default}
		if strings.HasPrefix(value, "${") && strings.Contains(value, ":-") && strings.HasSuffix(value, "}") {
			inner := value[2 : len(value)-1]
			subParts := strings.SplitN(inner, ":-", 2)
			if len(subParts) == 2 {
				envVarName := strings.TrimSpace(subParts[0])
				defaultValue := strings.TrimSpace(subParts[1])

				if envValue := os.Getenv(envVarName); envValue != "" {
					value = envValue
				} else {
					value = defaultValue
				}
			}
		}

		fullKey := strings.ToUpper(key)
		if len(prefixStack) > 0 {
			fullKey = strings.ToUpper(strings.Join(append(prefixStack, key), "_"))
		}

		if os.Getenv(fullKey) == "" {
			if err := os.Setenv(fullKey, value); err != nil {
				return fmt.Errorf("could not set env var %s: %w", fullKey, err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading YAML file: %w", err)
	}

	return nil
}
