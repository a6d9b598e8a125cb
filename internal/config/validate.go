package config

import (
	"fmt"
	"regexp"
	"strings"
)

// RequiredKeys are the configuration keys every application must
// provide (directly or via injection) before it can be deployed.
var RequiredKeys = []string{
	"Environment",
	"ApplicationName",
	"ClusterName",
	"DesiredCount",
	"MinCapacity",
	"MaxCapacity",
	"ContainerPort",
	"CPU",
	"Memory",
	"VpcId",
	"SubnetIds",
	"HealthCheckPath",
	"TargetGroupPort",
}

var (
	vpcIDPattern    = regexp.MustCompile(`^vpc-[a-f0-9]{8}([a-f0-9]{9})?$`)
	subnetIDPattern = regexp.MustCompile(`^subnet-[a-f0-9]{8}([a-f0-9]{9})?$`)
)

// ValidVpcID reports whether s looks like a VPC identifier.
func ValidVpcID(s string) bool { return vpcIDPattern.MatchString(s) }

// ValidSubnetID reports whether s looks like a subnet identifier.
func ValidSubnetID(s string) bool { return subnetIDPattern.MatchString(s) }

// Validate checks the loaded configuration for missing required keys
// and malformed AWS resource identifiers. It returns every finding
// rather than stopping at the first.
func (c *AppConfig) Validate() []error {
	var errs []error

	var missing []string
	for _, key := range RequiredKeys {
		if v, ok := c.Parameters.Get(key); !ok || v == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required keys: %s", strings.Join(missing, ", ")))
	}

	if c.Settings.VpcID != "" && !vpcIDPattern.MatchString(c.Settings.VpcID) {
		errs = append(errs, fmt.Errorf("VpcId %q does not match the expected format", c.Settings.VpcID))
	}

	for _, subnet := range c.Settings.SubnetIDs {
		if !subnetIDPattern.MatchString(subnet) {
			errs = append(errs, fmt.Errorf("SubnetIds entry %q does not match the expected format", subnet))
		}
	}

	if c.Settings.MinCapacity > c.Settings.MaxCapacity && c.Settings.MaxCapacity != 0 {
		errs = append(errs, fmt.Errorf("MinCapacity (%d) exceeds MaxCapacity (%d)",
			c.Settings.MinCapacity, c.Settings.MaxCapacity))
	}

	if !ValidEnvironments[c.Environment] {
		errs = append(errs, fmt.Errorf("unknown environment %q", c.Environment))
	}

	return errs
}
