// Package aws provides AWS-backed configuration collaborators: an s3://
// reader and value resolvers for Secrets Manager, Systems Manager Parameter
// Store and CloudFormation stack outputs.
package aws

import "github.com/vitalibo/pyxis"

// Register wires every AWS collaborator into the factory's registries. AWS
// clients are constructed lazily on first use, so registering them is free
// for configurations that never reference an AWS source.
func Register(f *pyxis.Factory) {
	f.Readers().Register(pyxis.DefaultPriority, MatchS3, func() (pyxis.Reader, error) {
		return NewS3Reader()
	})
	f.Resolvers().Register(pyxis.DefaultPriority, MatchSecretsManager, func() (pyxis.ValueResolver, error) {
		return NewSecretsManagerResolver()
	})
	f.Resolvers().Register(pyxis.DefaultPriority, MatchSystemsManager, func() (pyxis.ValueResolver, error) {
		return NewSystemsManagerResolver()
	})
	f.Resolvers().Register(pyxis.DefaultPriority, MatchCloudFormation, func() (pyxis.ValueResolver, error) {
		return NewCloudFormationResolver()
	})
}
