/*
Package domain contains the pure value types shared by every layer of the blending
state machine.

It defines skeletal poses, bone transforms and the typed parameters that drive
transitions and blend nodes. This package is kept free of I/O and of the state machine
itself, so adapters (stores, presentation, clip sources) can depend on it without pulling
in the runtime.

# Key Entities

  - BoneID: Opaque, comparable identifier of a bone shared with the host scene graph.
  - LocalTransform: Position, rotation (quaternion) and scale of a single bone.
  - Pose: A bone -> transform mapping with weighted accumulation (blending).
  - Parameter: Tagged union of Rule (bool), Weight (float32) and Index (int32).
  - ParameterContainer: Named parameters read by transitions and blend nodes.
  - LifecycleHooks: Callbacks fired when layers change state or transition.
*/
package domain
