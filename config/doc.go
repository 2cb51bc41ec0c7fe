// Package config parses the Apache-style configuration file format fixed
// by §6: top-level CacheSize/Listen/ThreadPoolSize directives and one or
// more <VirtualHost>...</VirtualHost> blocks, line-oriented, blank lines
// ignored. A file with no <VirtualHost> block is rejected. The grammar itself is non-goal-fixed and not extensible;
// only the directive set is a superset of original_source/src/config.rs.
package config
