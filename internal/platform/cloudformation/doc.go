// Package cloudformation wraps the AWS CloudFormation API behind the
// StackManager interface consumed by the provisioning driver.
//
// RealClient talks to AWS (or a LocalStack endpoint); MockClient is a
// test double with per-method function fields.
package cloudformation
