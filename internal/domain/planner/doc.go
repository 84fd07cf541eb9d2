// Package planner ties the estimate, the layout packer and the advisor
// together into one building plan.
package planner
